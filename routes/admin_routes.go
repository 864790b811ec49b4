package routes

import (
	"github.com/Priyam-804/WearNest/controllers"
	"github.com/Priyam-804/WearNest/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes mounts the console endpoints behind the admin auth
// middleware.
func RegisterAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())

	orders := admin.Group("/orders")
	{
		orders.GET("", controllers.ListAllOrders)
		orders.PUT("/:id/status", controllers.UpdateOrderStatus)
		orders.PUT("/:id/return-status", controllers.UpdateReturnStatus)
		orders.PUT("/:id/process-refund", controllers.ProcessRefund)
		orders.PUT("/:id/complete-refund", controllers.CompleteRefund)
	}

	coupons := admin.Group("/coupons")
	{
		coupons.GET("", controllers.ListCoupons)
		coupons.POST("", controllers.CreateCoupon)
		coupons.PUT("/:id/deactivate", controllers.DeactivateCoupon)
	}

	surprises := admin.Group("/surprises")
	{
		surprises.GET("", controllers.ListSurpriseTemplates)
		surprises.POST("", controllers.CreateSurpriseTemplate)
		surprises.PUT("/:id/deactivate", controllers.DeactivateSurpriseTemplate)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("/sales", controllers.GetSalesReport)
		reports.GET("/sales/export", controllers.ExportSalesReport)
	}
}
