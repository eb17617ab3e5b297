package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/octozek/internal/pricing"
)

// DefaultGallery is the sample inspiration set shipped with the form.
var DefaultGallery = []string{
	"/imgs/rock-1.png",
	"/imgs/rock-2.png",
	"/imgs/rock-3.png",
	"/imgs/rock-4.png",
	"/imgs/rock-5.png",
	"/imgs/rock-6.png",
	"/imgs/rock-8.png",
	"/imgs/rock-9.png",
	"/imgs/rock-10.png",
}

// Config contains the values required by startup seed.
type Config struct {
	Rates   pricing.Rates
	Gallery []string
}

// DefaultConfig seeds the built-in rates and gallery.
func DefaultConfig() Config {
	return Config{Rates: pricing.DefaultRates(), Gallery: DefaultGallery}
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way. Existing rates are
// left alone so operator edits survive restarts.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureRateConfig(ctx, tx, cfg.Rates, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for i, src := range cfg.Gallery {
		if err := ensureGalleryImage(ctx, tx, src, i, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRateConfig(ctx context.Context, tx *sql.Tx, r pricing.Rates, stats *Stats) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO rate_config (id, base_width_feet, base_height_feet, base_price, shipping, step_price)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, r.BaseWidthFeet, r.BaseHeightFeet, r.BasePrice, r.Shipping, r.StepPrice)
	if err != nil {
		return fmt.Errorf("insert default rate_config: %w", err)
	}
	return count(result, &stats.Inserts)
}

func ensureGalleryImage(ctx context.Context, tx *sql.Tx, src string, position int, stats *Stats) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO gallery_images (src, position, active)
		VALUES (?, ?, TRUE)
		ON CONFLICT(src) DO NOTHING
	`, src, position)
	if err != nil {
		return fmt.Errorf("insert gallery image %s: %w", src, err)
	}
	inserted := 0
	if err := count(result, &inserted); err != nil {
		return err
	}
	if inserted > 0 {
		stats.Inserts += inserted
		return nil
	}

	result, err = tx.ExecContext(ctx, `
		UPDATE gallery_images
		SET position = ?
		WHERE src = ? AND position <> ?
	`, position, src, position)
	if err != nil {
		return fmt.Errorf("update gallery image %s: %w", src, err)
	}
	return count(result, &stats.Updates)
}

func count(result sql.Result, n *int) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	*n += int(affected)
	return nil
}
