package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

func (s ServerConfig) Addr() string {
	host := s.Host
	if host == "" {
		host = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", host, s.Port)
}

// MongoConfig holds document-store settings.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// UploadConfig holds local media storage settings.
type UploadConfig struct {
	Dir          string
	MaxSizeBytes int64
}

// Config is the application-wide configuration.
type Config struct {
	Server       ServerConfig
	Mongo        MongoConfig
	JWT          JWTConfig
	Upload       UploadConfig
	CORSOrigins  []string
	StoreBackend string // "mongo" or "memory"
	Debug        bool
}

// Load reads configuration from the environment on top of defaults.
// Keys are MEDIMART_ prefixed, e.g. MEDIMART_MONGO_URI.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "medimart")
	v.SetDefault("jwt.secret", "medimart-dev-secret")
	v.SetDefault("jwt.expiry_hours", 24)
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.max_size_bytes", 5<<20)
	v.SetDefault("cors.origins", []string{"http://localhost:3000"})
	v.SetDefault("store.backend", "mongo")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("MEDIMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("server.host"),
			Port: v.GetInt("server.port"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("jwt.secret"),
			ExpiryHours: v.GetInt("jwt.expiry_hours"),
		},
		Upload: UploadConfig{
			Dir:          v.GetString("upload.dir"),
			MaxSizeBytes: v.GetInt64("upload.max_size_bytes"),
		},
		CORSOrigins:  v.GetStringSlice("cors.origins"),
		StoreBackend: v.GetString("store.backend"),
		Debug:        v.GetBool("debug"),
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	return cfg, nil
}
