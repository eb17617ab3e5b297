package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Simplici0/octozek/internal/pricing"
)

type quoteOptions struct {
	raw         pricing.RawInput
	preset      string
	storedRates bool
	format      string
}

func newQuoteCmd(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a background panel",
		Long: `Price a background panel the same way the order form does.

Dimensions are clamped to 0..100 ft and 0..11.99 in; thickness snaps to an
even number of inches between 4 and 60.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := pricing.DefaultRates()
			if opts.storedRates {
				database, store, _, err := root.openCatalog(cmd.Context())
				if err != nil {
					return err
				}
				defer database.Close()
				if rates, err = store.RatesOrDefault(cmd.Context()); err != nil {
					return err
				}
			}

			in := pricing.ParseInput(opts.raw)
			if opts.preset != "" {
				w, h, err := pricing.ParsePreset(opts.preset)
				if err != nil {
					return err
				}
				in.Width, in.Height = w, h
			}

			result := pricing.Calculate(in, rates)
			switch opts.format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"input":  result.Input,
					"area":   result.Area,
					"prices": result.Breakdown.Display(),
				})
			case "text", "":
				printQuote(cmd.OutOrStdout(), result)
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (use text or json)", opts.format)
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.raw.WidthFeet, "wft", "4", "width, feet")
	f.StringVar(&opts.raw.WidthInches, "win", "0", "width, inches")
	f.StringVar(&opts.raw.HeightFeet, "hft", "2", "height, feet")
	f.StringVar(&opts.raw.HeightInches, "hin", "0", "height, inches")
	f.StringVarP(&opts.raw.Thickness, "thickness", "t", "4", "thickness, inches")
	f.StringVarP(&opts.preset, "preset", "p", "", "size preset in inches, e.g. 36x18 (overrides width and height)")
	f.BoolVar(&opts.storedRates, "stored-rates", false, "price with the rates stored in the catalog database")
	f.StringVarP(&opts.format, "format", "f", "text", "output format (text, json)")

	return cmd
}

func printQuote(w io.Writer, r pricing.Result) {
	wFt, wIn := pricing.FormatDimension(r.Input.Width)
	hFt, hIn := pricing.FormatDimension(r.Input.Height)
	prices := r.Breakdown.Display()

	fmt.Fprintf(w, "Width:     %s ft %s in\n", wFt, wIn)
	fmt.Fprintf(w, "Height:    %s ft %s in\n", hFt, hIn)
	fmt.Fprintf(w, "Thickness: %d in\n", r.Input.Thickness)
	fmt.Fprintf(w, "Area:      %.2f sq ft\n", r.Area)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Material:  %s\n", prices.Material)
	fmt.Fprintf(w, "Shipping:  %s\n", prices.Shipping)
	fmt.Fprintf(w, "Options:   %s\n", prices.Options)
	fmt.Fprintf(w, "Total:     %s\n", prices.Total)
}
