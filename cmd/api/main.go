package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kasir-pos/internal/config"
	"kasir-pos/internal/handler"
	"kasir-pos/internal/metrics"
	"kasir-pos/internal/receipt"
	"kasir-pos/internal/repository"
	"kasir-pos/internal/service"
	"kasir-pos/internal/ws"
	"kasir-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.Database)
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	var opener receipt.DocumentOpener = receipt.NopOpener{}
	if cfg.OpenReceipt {
		opener = receipt.SystemOpener{}
	}

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db, productRepo)

	catalogService := service.NewCatalogService(productRepo)
	saleService := service.NewSaleService(saleRepo, nil)
	receiptService := service.NewReceiptService(saleRepo, opener, cfg.OutputDir, cfg.Location())
	kasirService := service.NewKasirService(catalogService, saleService, receiptService, wsHub)

	kasirHandler := handler.NewKasirHandler(kasirService, receiptService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")
	kasirHandler.Register(api.Group("/kasir"))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	wsHub.Stop()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server exited")
}
