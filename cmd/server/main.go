package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"luxfur/internal/config"
	"luxfur/internal/database"
	"luxfur/internal/handlers"
	"luxfur/internal/middleware"
	"luxfur/internal/repositories"
	"luxfur/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.NewMigrator(db).Run(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}

	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	emailService := services.NewEmailService(services.EmailConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})
	notifier := services.NewEmailNotifier(orderRepo, emailService, logger)
	defer notifier.Close()

	cartService := services.NewCartService(productRepo, logger)
	checkoutService := services.NewCheckoutService(cartService, orderRepo, notifier, logger)
	authService := services.NewAuthService(userRepo)

	shopHandler := handlers.NewShopHandler(productRepo, logger)
	cartHandler := handlers.NewCartHandler(cartService, productRepo, sessionStore, logger)
	orderHandler := handlers.NewOrderHandler(checkoutService, cartService, orderRepo, sessionStore, logger)
	authHandler := handlers.NewAuthHandler(authService, sessionStore, logger)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, authService)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(authMiddleware.LoadUser)

	r.Get("/products", shopHandler.ListProducts)
	r.Get("/products/{slug}", shopHandler.GetProduct)
	r.Get("/categories", shopHandler.ListCategories)
	r.Get("/categories/{slug}", shopHandler.CategoryProducts)

	r.Get("/cart", cartHandler.ViewCart)
	r.Post("/cart/items/{productID}", cartHandler.AddToCart)
	r.Delete("/cart/items/{productID}", cartHandler.RemoveFromCart)
	r.Delete("/cart", cartHandler.ClearCart)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/orders", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{id}", orderHandler.GetOrder)
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
