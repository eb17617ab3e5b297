// Package catalog reads the runtime rates and the sample inspiration gallery
// from the SQLite catalog.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/Simplici0/octozek/internal/pricing"
)

// ErrNoRates is returned when the rate_config singleton has not been seeded.
var ErrNoRates = errors.New("rate_config singleton not found")

// Image is one sample gallery tile.
type Image struct {
	Src   string `json:"src"`
	Title string `json:"title"`
}

// Store wraps the catalog database.
type Store struct {
	db *sql.DB
}

// New returns a Store backed by db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Rates loads the pricing rates.
func (s *Store) Rates(ctx context.Context) (pricing.Rates, error) {
	var r pricing.Rates
	err := s.db.QueryRowContext(ctx, `
		SELECT base_width_feet, base_height_feet, base_price, shipping, step_price
		FROM rate_config
		WHERE id = 1
	`).Scan(&r.BaseWidthFeet, &r.BaseHeightFeet, &r.BasePrice, &r.Shipping, &r.StepPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Rates{}, ErrNoRates
		}
		return pricing.Rates{}, fmt.Errorf("query rate_config: %w", err)
	}
	return r, nil
}

// RatesOrDefault loads the pricing rates and falls back to the built-in
// defaults when the catalog has none.
func (s *Store) RatesOrDefault(ctx context.Context) (pricing.Rates, error) {
	r, err := s.Rates(ctx)
	if errors.Is(err, ErrNoRates) {
		return pricing.DefaultRates(), nil
	}
	return r, err
}

// UpdateRates replaces the pricing rates.
func (s *Store) UpdateRates(ctx context.Context, r pricing.Rates) error {
	if r.BaseWidthFeet.Sign() <= 0 || r.BaseHeightFeet.Sign() <= 0 {
		return fmt.Errorf("reference panel must have a positive size")
	}
	if r.BasePrice.IsNegative() || r.Shipping.IsNegative() || r.StepPrice.IsNegative() {
		return fmt.Errorf("rates must not be negative")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_config (id, base_width_feet, base_height_feet, base_price, shipping, step_price)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_width_feet = excluded.base_width_feet,
			base_height_feet = excluded.base_height_feet,
			base_price = excluded.base_price,
			shipping = excluded.shipping,
			step_price = excluded.step_price,
			updated_at = CURRENT_TIMESTAMP
	`, r.BaseWidthFeet, r.BaseHeightFeet, r.BasePrice, r.Shipping, r.StepPrice)
	if err != nil {
		return fmt.Errorf("upsert rate_config: %w", err)
	}
	return nil
}

// Gallery lists active sample images in display order.
func (s *Store) Gallery(ctx context.Context) ([]Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT src
		FROM gallery_images
		WHERE active = TRUE
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query gallery images: %w", err)
	}
	defer rows.Close()

	images := make([]Image, 0)
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, Image{Src: src, Title: Title(src)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery images: %w", err)
	}

	return images, nil
}

// Title derives a caption from an image path: "/imgs/rock-10.png" -> "Rock 10".
func Title(src string) string {
	name := path.Base(src)
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' }), " ")
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
