package model

import (
	"strings"
	"time"
)

// Severity grades how badly a crop is affected.
type Severity string

const (
	SeverityNone     Severity = "None"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// AnalysisResult is the outcome of classifying a crop image.
type AnalysisResult struct {
	Disease     string
	Confidence  int // 0-100
	Severity    Severity
	Treatment   string
	SprayTime   string
	Description string
	Prevention  string
}

// Healthy reports whether the classifier found no disease.
func (r AnalysisResult) Healthy() bool {
	return r.Severity == SeverityNone
}

// NeedsTreatment reports whether a treatment block should be shown.
func (r AnalysisResult) NeedsTreatment() bool {
	return r.Treatment != "" && !strings.EqualFold(r.Treatment, "No treatment needed")
}

// Supply describes how much of a crop is reaching the mandi.
type Supply string

const (
	SupplyExcellent Supply = "Excellent"
	SupplyGood      Supply = "Good"
	SupplyLimited   Supply = "Limited"
)

// CropPrice is one row of a mandi price table.
type CropPrice struct {
	Name          string
	Emoji         string
	Price         int // rupees per unit
	Unit          string
	ChangePercent int
	Quality       string
	Supply        Supply
}

// Rising reports whether the price moved up (or stayed flat).
func (p CropPrice) Rising() bool {
	return p.ChangePercent >= 0
}

// PriceTable is the set of prices for one mandi location.
type PriceTable struct {
	Location  string
	Rows      []CropPrice
	FetchedAt time.Time
	Stale     bool
}

// Locations lists the mandi locations a user can pick from.
var Locations = []string{"Bangalore", "Mumbai", "Delhi", "Chennai", "Hyderabad", "Pune"}

// DefaultLocation is used when no location is configured.
const DefaultLocation = "Bangalore"

// IsLocation reports whether name is one of the known mandi locations.
func IsLocation(name string) bool {
	for _, l := range Locations {
		if l == name {
			return true
		}
	}
	return false
}

// Scheme is a government scheme available to farmers.
type Scheme struct {
	ID          int64
	Name        string
	FullName    string
	Category    SchemeCategory
	Amount      string
	Description string
	Eligibility string
	Status      string
	Deadline    string
	Benefits    []string
	Documents   []string
}

// SchemeCategory groups schemes on the schemes screen.
type SchemeCategory string

const (
	CategoryAll       SchemeCategory = "all"
	CategoryFinancial SchemeCategory = "financial"
	CategoryInsurance SchemeCategory = "insurance"
	CategoryEquipment SchemeCategory = "equipment"
	CategoryTraining  SchemeCategory = "training"
)

// SchemeCategories is the fixed, ordered category set.
var SchemeCategories = []SchemeCategory{
	CategoryAll,
	CategoryFinancial,
	CategoryInsurance,
	CategoryEquipment,
	CategoryTraining,
}

// Label returns the display name of a category.
func (c SchemeCategory) Label() string {
	switch c {
	case CategoryAll:
		return "All Schemes"
	case CategoryFinancial:
		return "Financial Aid"
	case CategoryInsurance:
		return "Insurance"
	case CategoryEquipment:
		return "Equipment"
	case CategoryTraining:
		return "Training"
	default:
		return string(c)
	}
}

// FilterSchemes returns the schemes in category c, or all of them for CategoryAll.
// The input slice is never modified.
func FilterSchemes(schemes []Scheme, c SchemeCategory) []Scheme {
	out := make([]Scheme, 0, len(schemes))
	for _, s := range schemes {
		if c == CategoryAll || s.Category == c {
			out = append(out, s)
		}
	}
	return out
}
