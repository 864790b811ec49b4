package routes

import (
	"github.com/Priyam-804/WearNest/controllers"
	"github.com/Priyam-804/WearNest/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes mounts the customer-facing endpoints behind the user
// auth middleware.
func RegisterUserRoutes(rg *gin.RouterGroup) {
	user := rg.Group("")
	user.Use(middleware.AuthMiddleware())

	checkout := user.Group("/checkout")
	{
		checkout.POST("/summary", controllers.GetCheckoutSummary)
	}

	orders := user.Group("/orders")
	{
		orders.POST("", controllers.PlaceOrder)
		orders.GET("", controllers.GetOrders)
		orders.GET("/:id", controllers.GetOrderDetails)
		orders.PUT("/:id/cancel", controllers.CancelOrder)
		orders.PUT("/:id/return", controllers.ReturnOrder)
		orders.GET("/:id/invoice", controllers.DownloadInvoice)
	}

	returns := user.Group("/returns")
	{
		returns.GET("/reasons", controllers.GetReturnReasons)
	}

	payment := user.Group("/payment")
	{
		payment.POST("/create-intent", controllers.CreatePaymentIntent)
		payment.POST("/verify", controllers.VerifyPayment)
	}

	coupons := user.Group("/coupons")
	{
		coupons.GET("", controllers.GetUserCoupons)
		coupons.POST("/apply", controllers.ApplyCoupon)
	}

	loyalty := user.Group("/loyalty")
	{
		loyalty.GET("/status", controllers.GetLoyaltyStatus)
		loyalty.POST("/claim", controllers.ClaimSurprise)
	}

	user.GET("/wallet", controllers.GetWallet)
}
