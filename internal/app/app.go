// Package app, yapılandırmadan veritabanını, servisleri ve HTTP router'ını kurar.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/metrics"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// App, çalışan bir mağazanın bileşenlerini bir arada tutar
type App struct {
	Config   config.Config
	DB       *database.SQLDatabase
	Catalog  *database.Catalog
	Metrics  *metrics.Metrics
	Security *services.SecurityLogger
	Auth     *services.AuthService
	Router   *gin.Engine
}

// New, ayarları doğrular ve tüm bağımlılıkları kurar
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	catalog, err := database.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDatabase(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var sessions database.SessionStore
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		sessions = database.NewMemorySessionStore()
	default:
		sessions = database.NewSQLSessionStore(db)
	}

	m := metrics.New()
	security := services.NewSecurityLogger(cfg.SecurityLog)
	email := services.NewEmailService(services.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	carts := services.NewCartService(sessions, catalog, m)
	wishlists := services.NewWishlistService(sessions, catalog, carts, m)
	auth := services.NewAuthService(db, sessions, email, security, m)
	checkout := services.NewCheckoutService(sessions, carts, db, email, m)

	if cfg.AdminEmail == "" {
		log.Println("App.New - Admin credentials not configured, admin login is disabled")
	}

	h := handlers.NewHandler(handlers.Dependencies{
		DB:        db,
		Sessions:  sessions,
		Catalog:   catalog,
		Carts:     carts,
		Wishlists: wishlists,
		Auth:      auth,
		Checkout:  checkout,
		UserAuth:  services.NewPasswordAuthenticator(db),
		AdminAuth: services.NewFixedAdminAuthenticator(cfg.AdminEmail, cfg.AdminPassword),
	})

	log.Printf("App.New - %d products, driver %s, session store %s", len(catalog.ListProducts()), cfg.DBDriver, cfg.SessionStore)
	return &App{
		Config:   cfg,
		DB:       db,
		Catalog:  catalog,
		Metrics:  m,
		Security: security,
		Auth:     auth,
		Router:   handlers.NewRouter(h, m),
	}, nil
}

// Close, açık kaynakları kapatır
func (a *App) Close() error {
	return errors.Join(a.Security.Close(), a.DB.Close())
}
