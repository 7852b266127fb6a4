package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/spf13/cobra"
)

// OrdersOptions, orders komutunun bayrakları
type OrdersOptions struct {
	*RootOptions
	Format string
	Limit  int
}

// OrderLine, ledger çıktısındaki tek satır
type OrderLine struct {
	models.Order
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
}

// NewOrdersCommand, sipariş defterini listeleyen komutu oluşturur
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the order ledger with the latest payment status",
		Long: `List committed orders, newest first, together with the most recent
payment row of each order.

Examples:
  storefront orders
  storefront orders --limit 10 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			return runOrders(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "show at most n orders (0 = all)")

	return cmd
}

func runOrders(opts *OrdersOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	orders, err := db.GetAllOrders(ctx)
	if err != nil {
		return err
	}
	if opts.Limit > 0 && len(orders) > opts.Limit {
		orders = orders[:opts.Limit]
	}

	lines := make([]OrderLine, 0, len(orders))
	for _, o := range orders {
		line := OrderLine{Order: o}
		payment, err := db.GetLatestPayment(ctx, o.ID)
		switch {
		case errors.Is(err, database.ErrNotFound):
		case err != nil:
			return err
		default:
			line.PaymentMethod = payment.Method
			line.PaymentStatus = payment.Status
		}
		lines = append(lines, line)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}

	if len(lines) == 0 {
		fmt.Fprintln(out, "No orders.")
		return nil
	}
	for _, l := range lines {
		fmt.Fprintf(out, "#%d  %s  %s %s <%s>  %.2f  %s/%s\n",
			l.ID, l.CreatedAt.Format("2006-01-02 15:04"), l.FirstName, l.LastName, l.Email,
			l.TotalAmount, l.PaymentMethod, l.PaymentStatus)
	}
	return nil
}
