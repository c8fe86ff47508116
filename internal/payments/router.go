package payments

import (
	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller) {
	payments := rg.Group("/payments")
	{
		payments.POST("/initialize", controller.InitializePayment)
		payments.POST("/verify", controller.VerifyPayment)
		payments.GET("/monnify/keys", controller.MonnifyKeys)
		payments.POST("/webhook/paystack", controller.PaystackWebhook)
	}
}
