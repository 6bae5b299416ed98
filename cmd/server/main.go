package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/opernhaus/ticket-booking/internal/cart"       // In-memory session store
	"github.com/opernhaus/ticket-booking/internal/catalog"    // Embedded shows and seating charts
	"github.com/opernhaus/ticket-booking/internal/config"     // Internal config loader
	"github.com/opernhaus/ticket-booking/internal/handler"    // HTTP handlers
	"github.com/opernhaus/ticket-booking/internal/middleware" // Cache and rate-limit middleware
	"github.com/opernhaus/ticket-booking/internal/queue"      // Booking event consumer
	"github.com/opernhaus/ticket-booking/internal/router"     // Internal router setup
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	cat, err := catalog.Load() // Parse the embedded show and chart data
	if err != nil {
		log.Fatalf("catalog: %v", err) // Bad embedded data is a build defect
	}
	carts := cart.NewStore(cfg.SessionTTL) // Session store shares the token TTL

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	publicH := handler.NewPublicHandler(cat, carts) // Browsing endpoints
	cartH := handler.NewCartHandler(cat, carts, cfg.SessionSecret, cfg.SessionTTL)
	checkoutH := handler.NewCheckoutHandler(cat, carts)

	e := echo.New()          // Create Echo instance
	router.RegisterRoutes(e) // Health check
	router.RegisterPublic(e, publicH, cfg.SessionSecret, limitMW, cacheMW)
	router.RegisterBooking(e, cartH, checkoutH, cfg.SessionSecret, limitMW)

	go func() { // Consume booking.confirmed in the background
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
