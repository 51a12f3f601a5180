package provider

import (
	"context"
	"database/sql"
	"time"

	"kisan/internal/db"
	"kisan/internal/model"
)

// CatalogMarket serves the static price table from the SQLite catalog after
// a simulated fetch delay. Prices are the same for every known location.
type CatalogMarket struct {
	DB    *sql.DB
	Delay time.Duration
	Now   func() time.Time
}

func (c CatalogMarket) Prices(ctx context.Context, location string) (model.PriceTable, error) {
	if !model.IsLocation(location) {
		return model.PriceTable{}, Errorf("prices", ErrInvalidInput, "unknown location %q", location)
	}
	if err := wait(ctx, c.Delay); err != nil {
		return model.PriceTable{}, err
	}
	rows, err := db.ListPrices(ctx, c.DB)
	if err != nil {
		return model.PriceTable{}, &Error{Op: "prices", Kind: ErrUnavailable, Err: err}
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return model.PriceTable{Location: location, Rows: rows, FetchedAt: now()}, nil
}

// CatalogSchemes serves the scheme directory from the SQLite catalog.
type CatalogSchemes struct {
	DB *sql.DB
}

func (c CatalogSchemes) Schemes(ctx context.Context) ([]model.Scheme, error) {
	schemes, err := db.ListSchemes(ctx, c.DB, model.CategoryAll)
	if err != nil {
		return nil, &Error{Op: "schemes", Kind: ErrUnavailable, Err: err}
	}
	return schemes, nil
}
