package cli

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/app"
	"storefront/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// serveFunc, testlerde sunucuyu başlatmadan ayarları yakalamak için değiştirilir
var serveFunc = runServe

// ServeOptions, serve komutunun bayrakları
type ServeOptions struct {
	*RootOptions
	Port         string
	SessionStore string
	CatalogPath  string
	TLS          bool
}

// NewServeCommand, HTTP sunucusunu başlatan komutu oluşturur
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the storefront HTTP server",
		Long: `Start the storefront HTTP server.

Settings are read from defaults, then --config, then environment variables
(PORT, DB_DRIVER, DATABASE_URL, CATALOG_PATH, SESSION_STORE, ADMIN_EMAIL,
ADMIN_PASSWORD, SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS, SMTP_FROM,
SECURITY_LOG, TLS), then flags.

Examples:
  storefront serve
  storefront serve --port 9000 --session-store memory
  storefront serve --db-driver pgx --database-url postgres://localhost/shop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serveFunc(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "HTTP port")
	cmd.Flags().StringVar(&opts.SessionStore, "session-store", "", "session store (memory|sql)")
	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", "", "catalog YAML file (embedded catalog when empty)")
	cmd.Flags().BoolVar(&opts.TLS, "tls", false, "serve HTTPS with a generated self-signed certificate")

	return cmd
}

func (o *ServeOptions) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = o.Port
	}
	if cmd.Flags().Changed("session-store") {
		cfg.SessionStore = o.SessionStore
	}
	if cmd.Flags().Changed("catalog") {
		cfg.CatalogPath = o.CatalogPath
	}
	if cmd.Flags().Changed("tls") {
		cfg.TLS = o.TLS
	}
	return cfg, nil
}

func runServe(ctx context.Context, cfg config.Config) error {
	gin.SetMode(gin.ReleaseMode)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS {
		cert, err := generateSelfSignedCert()
		if err != nil {
			return err
		}
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
	}

	errCh := make(chan error, 1)
	go func() {
		if cfg.TLS {
			log.Printf("Server - HTTPS listening on https://localhost%s", srv.Addr)
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		log.Printf("Server - HTTP listening on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Server - Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
