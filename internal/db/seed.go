package db

import (
	"database/sql"
	"fmt"

	"kisan/internal/model"
)

// DefaultPrices is the mandi price table shipped with the app.
var DefaultPrices = []model.CropPrice{
	{Name: "Tomato", Emoji: "🍅", Price: 24, Unit: "kg", ChangePercent: 8, Quality: "Grade A", Supply: model.SupplyGood},
	{Name: "Onion", Emoji: "🧅", Price: 15, Unit: "kg", ChangePercent: -12, Quality: "Grade A", Supply: model.SupplyExcellent},
	{Name: "Chili", Emoji: "🌶️", Price: 38, Unit: "kg", ChangePercent: 15, Quality: "Grade B", Supply: model.SupplyLimited},
	{Name: "Potato", Emoji: "🥔", Price: 18, Unit: "kg", ChangePercent: -5, Quality: "Grade A", Supply: model.SupplyGood},
	{Name: "Cabbage", Emoji: "🥬", Price: 12, Unit: "kg", ChangePercent: 3, Quality: "Grade A", Supply: model.SupplyExcellent},
	{Name: "Carrot", Emoji: "🥕", Price: 22, Unit: "kg", ChangePercent: 7, Quality: "Grade A", Supply: model.SupplyGood},
}

// DefaultSchemes is the government scheme catalog shipped with the app.
var DefaultSchemes = []model.Scheme{
	{
		ID:          1,
		Name:        "PM-KISAN",
		FullName:    "Pradhan Mantri Kisan Samman Nidhi",
		Category:    model.CategoryFinancial,
		Amount:      "₹6,000/year",
		Description: "Direct income support to all landholding farmer families",
		Eligibility: "All landholding farmer families",
		Status:      "Active",
		Deadline:    "Ongoing",
		Benefits:    []string{"₹2,000 every 4 months", "Direct bank transfer", "No income limit"},
		Documents:   []string{"Aadhaar Card", "Bank Account", "Land Records"},
	},
	{
		ID:          2,
		Name:        "KCC Loan",
		FullName:    "Kisan Credit Card",
		Category:    model.CategoryFinancial,
		Amount:      "Up to ₹3 Lakh",
		Description: "Credit facility for agricultural and allied activities",
		Eligibility: "All farmers with cultivable land",
		Status:      "Active",
		Deadline:    "Ongoing",
		Benefits:    []string{"Low interest rates", "Flexible repayment", "Insurance coverage"},
		Documents:   []string{"Land Records", "Identity Proof", "Income Certificate"},
	},
	{
		ID:          3,
		Name:        "PMFBY",
		FullName:    "Pradhan Mantri Fasal Bima Yojana",
		Category:    model.CategoryInsurance,
		Amount:      "2% of Sum Insured",
		Description: "Crop insurance scheme providing coverage against crop loss",
		Eligibility: "All farmers growing notified crops",
		Status:      "Active",
		Deadline:    "July 31, 2024",
		Benefits:    []string{"Natural disaster coverage", "Low premium", "Quick claim settlement"},
		Documents:   []string{"Aadhaar Card", "Bank Account", "Sowing Certificate"},
	},
	{
		ID:          4,
		Name:        "SMAM",
		FullName:    "Sub-Mission on Agricultural Mechanization",
		Category:    model.CategoryEquipment,
		Amount:      "40-50% Subsidy",
		Description: "Financial assistance for purchasing agricultural equipment",
		Eligibility: "Individual farmers and FPOs",
		Status:      "Active",
		Deadline:    "March 31, 2024",
		Benefits:    []string{"Tractor subsidy", "Implement subsidy", "Custom hiring centers"},
		Documents:   []string{"Aadhaar Card", "Bank Account", "Quotation"},
	},
	{
		ID:          5,
		Name:        "ATMA",
		FullName:    "Agricultural Technology Management Agency",
		Category:    model.CategoryTraining,
		Amount:      "Free Training",
		Description: "Extension services and training programs for farmers",
		Eligibility: "All farmers",
		Status:      "Active",
		Deadline:    "Ongoing",
		Benefits:    []string{"Free training", "Expert guidance", "Modern techniques"},
		Documents:   []string{"Aadhaar Card", "Farm details"},
	},
}

// Seed inserts the default catalog if it has not been populated yet.
// An existing catalog file is left untouched.
func Seed(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT (SELECT COUNT(*) FROM crop_prices) + (SELECT COUNT(*) FROM schemes)`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count catalog rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := seedPrices(tx); err != nil {
		return err
	}
	if err := seedSchemes(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func seedPrices(tx *sql.Tx) error {
	for _, p := range DefaultPrices {
		if _, err := tx.Exec(`
			INSERT INTO crop_prices(name, emoji, price, unit, change_percent, quality, supply)
			VALUES(?, ?, ?, ?, ?, ?, ?)
		`, p.Name, p.Emoji, p.Price, p.Unit, p.ChangePercent, p.Quality, string(p.Supply)); err != nil {
			return fmt.Errorf("failed to seed price %s: %w", p.Name, err)
		}
	}
	return nil
}

func seedSchemes(tx *sql.Tx) error {
	for _, s := range DefaultSchemes {
		if _, err := tx.Exec(`
			INSERT INTO schemes(id, name, full_name, category, amount, description, eligibility, status, deadline)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, s.ID, s.Name, s.FullName, string(s.Category), s.Amount, s.Description, s.Eligibility, s.Status, s.Deadline); err != nil {
			return fmt.Errorf("failed to seed scheme %s: %w", s.Name, err)
		}
		if err := insertSchemeItems(tx, s.ID, "benefit", s.Benefits); err != nil {
			return err
		}
		if err := insertSchemeItems(tx, s.ID, "document", s.Documents); err != nil {
			return err
		}
	}
	return nil
}

func insertSchemeItems(tx *sql.Tx, schemeID int64, kind string, items []string) error {
	for i, text := range items {
		if _, err := tx.Exec(`INSERT INTO scheme_items(scheme_id, kind, position, text) VALUES(?, ?, ?, ?)`,
			schemeID, kind, i, text); err != nil {
			return fmt.Errorf("failed to seed %s for scheme %d: %w", kind, schemeID, err)
		}
	}
	return nil
}
