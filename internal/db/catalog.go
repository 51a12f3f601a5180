package db

import (
	"context"
	"database/sql"
	"fmt"

	"kisan/internal/model"
)

// ListPrices returns the crop price table in catalog order.
func ListPrices(ctx context.Context, db *sql.DB) ([]model.CropPrice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT
			name,
			COALESCE(emoji, ''),
			price,
			unit,
			change_percent,
			COALESCE(quality, ''),
			COALESCE(supply, '')
		FROM crop_prices
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.CropPrice
	for rows.Next() {
		var p model.CropPrice
		var supply string
		if err := rows.Scan(&p.Name, &p.Emoji, &p.Price, &p.Unit, &p.ChangePercent, &p.Quality, &supply); err != nil {
			return nil, err
		}
		p.Supply = model.Supply(supply)
		results = append(results, p)
	}

	return results, rows.Err()
}

// ListSchemes returns schemes in the given category, or all of them for
// model.CategoryAll, each with its benefits and required documents.
func ListSchemes(ctx context.Context, db *sql.DB, category model.SchemeCategory) ([]model.Scheme, error) {
	query := `
		SELECT
			id,
			name,
			COALESCE(full_name, ''),
			category,
			COALESCE(amount, ''),
			COALESCE(description, ''),
			COALESCE(eligibility, ''),
			COALESCE(status, ''),
			COALESCE(deadline, '')
		FROM schemes
	`
	var args []any
	if category != model.CategoryAll && category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var results []model.Scheme
	for rows.Next() {
		var s model.Scheme
		var cat string
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.FullName,
			&cat,
			&s.Amount,
			&s.Description,
			&s.Eligibility,
			&s.Status,
			&s.Deadline,
		); err != nil {
			rows.Close()
			return nil, err
		}
		s.Category = model.SchemeCategory(cat)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// Release the only connection before the per-scheme queries.
	rows.Close()

	for i := range results {
		benefits, documents, err := getSchemeItems(ctx, db, results[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for scheme %d: %w", results[i].ID, err)
		}
		results[i].Benefits = benefits
		results[i].Documents = documents
	}

	return results, nil
}

func getSchemeItems(ctx context.Context, db *sql.DB, schemeID int64) ([]string, []string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT kind, text
		FROM scheme_items
		WHERE scheme_id = ?
		ORDER BY kind, position
	`, schemeID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var benefits, documents []string
	for rows.Next() {
		var kind, text string
		if err := rows.Scan(&kind, &text); err != nil {
			return nil, nil, err
		}
		if kind == "benefit" {
			benefits = append(benefits, text)
		} else {
			documents = append(documents, text)
		}
	}
	return benefits, documents, rows.Err()
}
