package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/cart"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/catalog"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/checkout"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/middleware"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/search"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/shipping"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/storage"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/user"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Catalog  *catalog.Handler
	Shipping *shipping.Handler
	Cart     *cart.Handler
	Checkout *checkout.Handler
	Orders   *order.Handler
	Users    *user.Handler
	Search   *search.Handler
	Images   *storage.Handler
	Redis    *redis.Client
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// public storefront
	api.GET("/products", h.Catalog.List)
	api.GET("/products/:id", h.Catalog.Get)
	api.GET("/search", h.Search.Products)
	api.GET("/shipping-methods", h.Shipping.ListActive)
	api.GET("/images/:object", h.Images.Download)

	// guest checkout works without a session
	api.POST("/checkout", middleware.AuthOptional(), h.Checkout.PlaceOrder)

	// auth
	auth := api.Group("/auth")
	auth.POST("/register", h.Users.Register)
	auth.POST("/login", middleware.LoginRateLimit(h.Redis), h.Users.Login)
	auth.POST("/refresh", h.Users.Refresh)

	// account
	account := api.Group("", middleware.AuthRequired())
	account.GET("/me", h.Users.Me)
	account.POST("/auth/logout", h.Users.Logout)
	account.GET("/cart", h.Cart.Get)
	account.PUT("/cart", h.Cart.Put)
	account.DELETE("/cart", h.Cart.Clear)
	account.GET("/orders", h.Orders.ListMine)
	account.GET("/orders/:id", h.Orders.Get)

	// backoffice
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("/products", h.Catalog.Create)
	admin.PUT("/products/:id", h.Catalog.Update)
	admin.POST("/products/:id/variants", h.Catalog.CreateVariant)
	admin.POST("/products/:id/restock", h.Catalog.RestockProduct)
	admin.POST("/variants/:id/restock", h.Catalog.Restock)
	admin.POST("/shipping-methods", h.Shipping.Create)
	admin.PUT("/shipping-methods/:id", h.Shipping.Update)
	admin.GET("/orders", h.Orders.ListAll)
	admin.PATCH("/orders/:id/status", h.Orders.UpdateStatus)
	admin.POST("/images", h.Images.Upload)
}
