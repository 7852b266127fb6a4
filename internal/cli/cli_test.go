package cli

import (
	"bytes"
	"context"
	"crypto/x509"
	"path/filepath"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "storefront", cmd.Use)

	for _, name := range []string{"serve", "orders"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestServeConfigPrecedence(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("SESSION_STORE", "sql")

	var got config.Config
	orig := serveFunc
	serveFunc = func(_ context.Context, cfg config.Config) error {
		got = cfg
		return nil
	}
	t.Cleanup(func() { serveFunc = orig })

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"serve", "--session-store", "memory", "--tls", "--database-url", "shop.db"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, "7000", got.Port, "unset flags keep the environment value")
	assert.Equal(t, "memory", got.SessionStore)
	assert.Equal(t, "shop.db", got.DatabaseURL)
	assert.True(t, got.TLS)
}

func TestServeInvalidConfig(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"serve", "--db-driver", "oracle"})
	assert.ErrorContains(t, cmd.Execute(), "unsupported db driver")
}

func TestGenerateSelfSignedCert(t *testing.T) {
	cert, err := generateSelfSignedCert()
	require.NoError(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	assert.Contains(t, leaf.DNSNames, "localhost")
	assert.NoError(t, leaf.VerifyHostname("127.0.0.1"))
	assert.Equal(t, x509.ECDSA, leaf.PublicKeyAlgorithm)
	assert.True(t, leaf.NotAfter.Before(time.Now().Add(91*24*time.Hour)))
}

func seedLedger(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, database.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	for _, total := range []float64{15, 70} {
		order := &models.Order{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", TotalAmount: total}
		require.NoError(t, db.CreateOrder(ctx, order))
		require.NoError(t, db.RecordPayment(ctx, &models.Payment{
			OrderID: order.ID, Method: models.PaymentMethodCOD, Status: models.PaymentStatusOnDelivery,
		}))
	}
	return path
}

func TestOrdersCommand_JSON(t *testing.T) {
	path := seedLedger(t)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"orders", "--database-url", path, "--format", "json"})
	require.NoError(t, cmd.Execute())

	body := gjson.Parse(out.String())
	require.Equal(t, int64(2), body.Get("#").Int())
	assert.Equal(t, 70.0, body.Get("0.total_amount").Float(), "newest first")
	assert.Equal(t, "pay_on_delivery", body.Get("0.payment_status").String())
	assert.Equal(t, "cod", body.Get("1.payment_method").String())
}

func TestOrdersCommand_TextLimit(t *testing.T) {
	path := seedLedger(t)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"orders", "--database-url", path, "-n", "1"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "#2")
	assert.NotContains(t, out.String(), "#1 ")
	assert.Contains(t, out.String(), "cod/pay_on_delivery")
}

func TestOrdersCommand_BadFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"orders", "--format", "xml"})
	assert.ErrorContains(t, cmd.Execute(), "invalid format")
}
