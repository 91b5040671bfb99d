package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"medimart-backend/internal/apperr"
)

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".pdf":  true,
}

// upload stores a multipart file under the configured directory and
// returns its public URL.
func (s *Server) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		s.fail(c, apperr.Invalid("file field is required"))
		return
	}
	if file.Size > s.cfg.Upload.MaxSizeBytes {
		s.fail(c, apperr.Invalid(fmt.Sprintf("file exceeds %d bytes", s.cfg.Upload.MaxSizeBytes)))
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		s.fail(c, apperr.Invalid("unsupported file type"))
		return
	}

	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		s.fail(c, apperr.Wrap(apperr.KindInternal, "prepare upload dir", err))
		return
	}
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		s.fail(c, apperr.Wrap(apperr.KindInternal, "generate file name", err))
		return
	}
	name := hex.EncodeToString(buf) + ext
	dst := filepath.Join(s.cfg.Upload.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		s.fail(c, apperr.Wrap(apperr.KindInternal, "save file", err))
		return
	}
	c.JSON(201, gin.H{"url": "/uploads/" + name})
}
