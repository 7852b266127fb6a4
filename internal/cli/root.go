package cli

import (
	"fmt"

	"storefront/internal/config"

	"github.com/spf13/cobra"
)

// RootOptions, tüm komutların ortak bayrakları
type RootOptions struct {
	ConfigPath  string
	DBDriver    string
	DatabaseURL string
}

// NewRootCommand, storefront CLI'ının kök komutunu oluşturur
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront - catalog, cart, wishlist and checkout server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBDriver, "db-driver", "", "database driver (sqlite|pgx)")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "database file or connection string")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewOrdersCommand(opts))

	return cmd
}

// loadConfig, dosya ve ortamdan okunan ayarların üzerine açıkça verilen
// bayrakları uygular
func (o *RootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("db-driver") {
		cfg.DBDriver = o.DBDriver
	}
	if cmd.Flags().Changed("database-url") {
		cfg.DatabaseURL = o.DatabaseURL
	}
	return cfg, nil
}

func validateFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be text or json", format)
	}
}
