// Package httpapi wires the gin transport for the catalog and order services.
// It parses and shape-checks requests, delegates to the application services,
// and serializes results; no business rules live here.
package httpapi

import "github.com/gin-gonic/gin"

// Handlers bundles the per-domain API handlers for router construction.
type Handlers struct {
	Products ProductsAPI
	Orders   OrdersAPI
}

// NewRouter builds the gin engine with all catalog and order routes mounted.
func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")

	products := api.Group("/products")
	products.POST("", handlers.Products.CreateProduct)
	products.GET("", handlers.Products.ListProducts)
	products.GET("/:id", handlers.Products.GetProduct)
	products.PUT("/:id", handlers.Products.UpdateProduct)

	orders := api.Group("/orders")
	orders.POST("", handlers.Orders.CreateOrder)
	orders.GET("", handlers.Orders.ListOrders)
	orders.GET("/:id", handlers.Orders.GetOrder)
	orders.PUT("/:id/status", handlers.Orders.UpdateOrderStatus)

	return router
}
