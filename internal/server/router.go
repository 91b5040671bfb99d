package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router builds the gin engine with every route mounted.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", s.cfg.Upload.Dir)

	api := r.Group("/api")

	// public
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)
	api.GET("/categories", s.listCategories)

	// authenticated
	authed := api.Group("", s.authRequired)
	{
		authed.GET("/users/profile", s.getProfile)
		authed.PUT("/users/profile", s.updateProfile)

		authed.POST("/products/:id/reviews", s.addReview)

		authed.POST("/orders", s.createOrder)
		authed.GET("/orders/my-orders", s.myOrders)
		authed.GET("/orders/:id", s.getOrder)
		authed.PATCH("/orders/:id/cancel", s.cancelOrder)

		authed.GET("/notifications", s.listNotifications)
		authed.PATCH("/notifications/:id/read", s.markNotificationRead)
	}

	// admin
	admin := authed.Group("/admin", s.adminRequired)
	{
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.DELETE("/products/:id", s.deleteProduct)

		admin.POST("/categories", s.createCategory)
		admin.PUT("/categories/:id", s.updateCategory)
		admin.DELETE("/categories/:id", s.deleteCategory)

		admin.GET("/orders", s.listAllOrders)
		admin.PATCH("/orders/:id/status", s.updateOrderStatus)

		admin.POST("/notifications", s.publishNotification)

		admin.POST("/uploads", s.upload)

		admin.GET("/analytics/summary", s.analyticsSummary)
		admin.GET("/analytics/top-products", s.analyticsTopProducts)
	}

	return r
}
