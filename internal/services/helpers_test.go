package services

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSession = "sess-1"

type fixture struct {
	db        *database.SQLDatabase
	sessions  database.SessionStore
	catalog   *database.Catalog
	metrics   *metrics.Metrics
	security  *bytes.Buffer
	carts     *CartService
	wishlists *WishlistService
	auth      *AuthService
	checkout  *CheckoutService
}

func testCatalog(t *testing.T) *database.Catalog {
	t.Helper()
	c, err := database.NewCatalog([]models.Product{
		{ID: 1, Name: "Notebook", Price: 12, DiscountPrice: 10, Tags: []string{"stationery"}},
		{ID: 2, Name: "Pen", Price: 4, DiscountPrice: 3.5},
		{ID: 3, Name: "Lamp", Price: 30, DiscountPrice: 25},
	})
	require.NoError(t, err)
	return c
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:       db,
		sessions: database.NewMemorySessionStore(),
		catalog:  testCatalog(t),
		metrics:  metrics.New(),
		security: &bytes.Buffer{},
	}
	email := NewEmailService(SMTPConfig{})
	f.carts = NewCartService(f.sessions, f.catalog, f.metrics)
	f.wishlists = NewWishlistService(f.sessions, f.catalog, f.carts, f.metrics)
	f.auth = NewAuthService(db, f.sessions, email, NewSecurityLoggerWriter(f.security), f.metrics)
	f.auth.HashCost = bcrypt.MinCost
	f.checkout = NewCheckoutService(f.sessions, f.carts, db, email, f.metrics)
	return f
}

func (f *fixture) state(t *testing.T) *models.SessionState {
	t.Helper()
	state, err := f.sessions.Get(context.Background(), testSession)
	require.NoError(t, err)
	return state
}

func (f *fixture) register(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), models.RegisterForm{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)
	return user
}

func validOrderForm(method string) models.OrderForm {
	return models.OrderForm{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Address:       "12 Analytical St",
		City:          "London",
		State:         "LDN",
		Zipcode:       "10001",
		PaymentMethod: method,
	}
}
