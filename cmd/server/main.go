package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/cart"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/catalog"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/checkout"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/config"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/database"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/mailer"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/order"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/routes"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/search"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/shipping"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/storage"
	"github.com/dignitasjota/eCommerce-origen-sub000/internal/user"
)

func main() {
	config.Load()
	ctx := context.Background()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	handles, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("❌ Could not connect datastores: %v", err)
	}
	defer handles.Close()

	index, err := search.Connect()
	if err != nil {
		log.Fatalf("❌ Could not connect Elasticsearch: %v", err)
	}
	images, err := storage.Connect(ctx)
	if err != nil {
		log.Fatalf("❌ Could not connect MinIO: %v", err)
	}

	catalogRepo := catalog.NewRepository(handles.DB)
	shippingRepo := shipping.NewRepository(handles.DB)
	orderRepo := order.NewRepository(handles.DB)
	userRepo := user.NewRepository(handles.DB)
	cartStore := cart.NewStore(handles.Redis)
	refreshStore := user.NewRefreshStore(handles.Redis)
	notifier := mailer.NewOrderNotifier(mailer.NewSMTPSender())

	checkoutService := checkout.NewService(
		catalogRepo,
		shipping.NewResolver(shippingRepo),
		orderRepo,
		notifier,
	)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Handlers{
		Catalog:  catalog.NewHandler(catalogRepo, index),
		Shipping: shipping.NewHandler(shippingRepo),
		Cart:     cart.NewHandler(cartStore),
		Checkout: checkout.NewHandler(checkoutService, cartStore),
		Orders:   order.NewHandler(orderRepo),
		Users:    user.NewHandler(userRepo, refreshStore),
		Search:   search.NewHandler(index),
		Images:   storage.NewHandler(images),
		Redis:    handles.Redis,
	})

	port := config.Get("PORT", "8080")
	log.Println("🚀 Origen API listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
