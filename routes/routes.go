package routes

import (
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the storefront API under /api/v1.
func RegisterRoutes(
	r *gin.Engine,
	productController *controllers.ProductController,
	categoryController *controllers.CategoryController,
	paymentController *controllers.PaymentController,
	orderController *controllers.OrderController,
	tokens middleware.TokenParser,
) {
	requireSignIn := middleware.RequireSignIn(tokens)
	isAdmin := middleware.IsAdmin()

	api := r.Group("/api/v1")

	categoryRoutes := api.Group("/category")
	{
		categoryRoutes.GET("", categoryController.GetCategories)
		categoryRoutes.GET("/:slug", categoryController.GetCategory)
		categoryRoutes.POST("", requireSignIn, isAdmin, categoryController.CreateCategory)
		categoryRoutes.PUT("/:id", requireSignIn, isAdmin, categoryController.UpdateCategory)
		categoryRoutes.DELETE("/:id", requireSignIn, isAdmin, categoryController.DeleteCategory)
	}

	productRoutes := api.Group("/product")
	{
		productRoutes.GET("", productController.GetProducts)
		productRoutes.GET("/count", productController.GetProductCount)
		productRoutes.GET("/list", productController.GetProductsPage)
		productRoutes.GET("/list/:page", productController.GetProductsPage)
		productRoutes.GET("/search/:keyword", productController.SearchProducts)
		productRoutes.GET("/related/:pid/:cid", productController.RelatedProducts)
		productRoutes.GET("/category/:slug", productController.ProductsByCategory)
		productRoutes.GET("/photo/:pid", productController.GetPhoto)
		productRoutes.GET("/:slug", productController.GetProduct)
		productRoutes.POST("/filters", productController.FilterProducts)
		productRoutes.POST("", requireSignIn, isAdmin, productController.CreateProduct)
		productRoutes.PUT("/:pid", requireSignIn, isAdmin, productController.UpdateProduct)
		productRoutes.DELETE("/:pid", productController.DeleteProduct)
	}

	paymentRoutes := api.Group("/payment", requireSignIn)
	{
		paymentRoutes.GET("/token", paymentController.GetClientToken)
		paymentRoutes.POST("", paymentController.Checkout)
	}

	api.GET("/orders", requireSignIn, orderController.GetOrders)
	api.GET("/all-orders", requireSignIn, isAdmin, orderController.GetAllOrders)
	api.PUT("/order-status/:orderId", requireSignIn, isAdmin, orderController.UpdateOrderStatus)
}
