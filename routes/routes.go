package routes

import (
	"github.com/Priyam-804/WearNest/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with the shared middleware chain and mounts
// the user and admin route groups.
func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(utils.RecoveryMiddleware())
	r.Use(utils.RequestIDMiddleware())
	r.Use(utils.LoggerMiddleware())
	r.Use(utils.CORSMiddleware())
	r.Use(utils.SecurityHeadersMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": utils.AppName})
	})

	v1 := r.Group("/v1")
	RegisterUserRoutes(v1)
	RegisterAdminRoutes(v1)
	return r
}
