package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Simplici0/octozek/internal/pricing"
)

func newRatesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show or change the stored pricing rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, _, err := root.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			rates, err := store.Rates(cmd.Context())
			if err != nil {
				return err
			}
			printRates(cmd.OutOrStdout(), rates)
			return nil
		},
	}
	cmd.AddCommand(newRatesSetCmd(root))
	return cmd
}

func newRatesSetCmd(root *rootOptions) *cobra.Command {
	var (
		baseWidth  string
		baseHeight string
		basePrice  string
		shipping   string
		stepPrice  string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update one or more pricing rates",
		Long: `Update the stored pricing rates. Only the flags given are changed.

The server and the price check pick up new rates on the next request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, store, _, err := root.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			rates, err := store.RatesOrDefault(cmd.Context())
			if err != nil {
				return err
			}

			updates := []struct {
				flag  string
				value string
				dst   *decimal.Decimal
			}{
				{"base-width", baseWidth, &rates.BaseWidthFeet},
				{"base-height", baseHeight, &rates.BaseHeightFeet},
				{"base-price", basePrice, &rates.BasePrice},
				{"shipping", shipping, &rates.Shipping},
				{"step-price", stepPrice, &rates.StepPrice},
			}
			changed := 0
			for _, u := range updates {
				if !cmd.Flags().Changed(u.flag) {
					continue
				}
				d, err := decimal.NewFromString(u.value)
				if err != nil {
					return fmt.Errorf("--%s must be a number: %q", u.flag, u.value)
				}
				*u.dst = d
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to update; pass at least one rate flag")
			}

			if err := store.UpdateRates(cmd.Context(), rates); err != nil {
				return err
			}
			printRates(cmd.OutOrStdout(), rates)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&baseWidth, "base-width", "", "reference panel width, feet")
	f.StringVar(&baseHeight, "base-height", "", "reference panel height, feet")
	f.StringVar(&basePrice, "base-price", "", "material price of the reference panel, USD")
	f.StringVar(&shipping, "shipping", "", "flat shipping, USD")
	f.StringVar(&stepPrice, "step-price", "", "price per 2 in of thickness above 4 in, USD")

	return cmd
}

func printRates(w io.Writer, r pricing.Rates) {
	fmt.Fprintf(w, "Reference panel: %s x %s ft\n", r.BaseWidthFeet, r.BaseHeightFeet)
	fmt.Fprintf(w, "Base price:      %s\n", pricing.FormatUSD(r.BasePrice))
	fmt.Fprintf(w, "Shipping:        %s\n", pricing.FormatUSD(r.Shipping))
	fmt.Fprintf(w, "Thickness step:  %s per 2 in\n", pricing.FormatUSD(r.StepPrice))
}
