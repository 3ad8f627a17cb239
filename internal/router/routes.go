package router

func InitializeRoutes() {
	api := Router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		products := api.Group("/products")
		{
			products.GET("/", GetAllProducts)
			products.POST("/", CreateProduct)
			products.GET("/:id", GetProductByID)
			products.PUT("/:id", EditProductByID)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", GetCart)
			cart.POST("/add", AddToCart)
			cart.PUT("/update", UpdateCartItem)
			cart.DELETE("/remove/:productId", RemoveCartItem)
			cart.DELETE("/clear", ClearCart)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", CreateOrder)
			orders.GET("", GetUserOrders)
			orders.GET("/all", RequireRole("admin"), GetAllOrders)
			orders.GET("/store-orders", GetStoreOrders)
			orders.GET("/store/order/:orderId", GetStoreOrderDetail)
			orders.PUT("/update/:orderId", RequireRole("admin"), UpdateOrderStatus)
			orders.DELETE("/cancel/:orderId", CancelOrder)
		}

		riders := api.Group("/riders")
		riders.Use(RequireRole("rider"))
		{
			riders.GET("/orders/new", GetNewOrders)
			riders.GET("/orders/my", GetMyOrders)
			riders.GET("/orders/location/:orderId", GetOrderLocation)
			riders.POST("/orders/accept/:orderId", AcceptOrder)
			riders.PUT("/orders/status/:orderId", UpdateDeliveryStatus)
		}
	}
}
