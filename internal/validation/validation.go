// Package validation implements field-level validation and normalization
// of user-entered transactions before they reach storage. Validation is a
// pure function of its input: the result is either a normalized record
// ready for submission, or a map from field name to the first violated
// rule's message. A failed validation blocks submission entirely.
package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pesafolio/internal/models"
)

// Field limits. Amounts are in KES.
const (
	MaxAssetNameLen = 100
	MaxNotesLen     = 500
	MaxAmount       = 1_000_000_000
	MaxFees         = 1_000_000
)

// FieldErrors maps a field name to the first rule it violated.
type FieldErrors map[string]string

// Input is a candidate transaction as entered in a form. Optional numeric
// fields are pointers so that "absent" and "zero" stay distinguishable.
type Input struct {
	TransactionType string   `json:"transaction_type"`
	AssetName       string   `json:"asset_name"`
	AssetType       string   `json:"asset_type"`
	Amount          float64  `json:"amount"`
	Quantity        *float64 `json:"quantity,omitempty"`
	PricePerUnit    *float64 `json:"price_per_unit,omitempty"`
	Fees            *float64 `json:"fees,omitempty"`
	TransactionDate string   `json:"transaction_date"`
	Status          string   `json:"status,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Normalized is a validated transaction ready for submission. Fees default
// to zero and status to "completed" when absent from the input.
type Normalized struct {
	TransactionType models.TransactionType
	AssetName       string
	AssetType       string
	Amount          decimal.Decimal
	Quantity        *float64
	PricePerUnit    *decimal.Decimal
	Fees            decimal.Decimal
	TransactionDate time.Time
	Status          string
	Notes           string
}

var financialTransactionTypes = map[string]bool{
	"buy": true, "sell": true, "dividend": true, "deposit": true, "withdrawal": true,
}

var financialAssetTypes = map[string]bool{
	"stock": true, "etf": true, "bond": true, "reit": true,
	"mmf": true, "chama": true, "sacco": true, "treasury_bill": true,
}

var physicalTransactionTypes = map[string]bool{
	"purchase": true, "sale": true, "valuation": true, "income": true,
}

var physicalAssetTypes = map[string]bool{
	"land": true, "real_estate": true, "livestock": true,
	"vehicle": true, "equipment": true, "other": true,
}

// Financial validates a financial-instrument transaction (NSE stocks,
// bonds, MMFs and the like).
func Financial(in Input) (*Normalized, FieldErrors) {
	return validate(in, financialTransactionTypes, financialAssetTypes, false)
}

// Physical validates a physical or illiquid-asset transaction (land,
// livestock, equipment). The notes field is only accepted here.
func Physical(in Input) (*Normalized, FieldErrors) {
	return validate(in, physicalTransactionTypes, physicalAssetTypes, true)
}

func validate(in Input, txTypes, assetTypes map[string]bool, allowNotes bool) (*Normalized, FieldErrors) {
	errs := FieldErrors{}

	if !txTypes[in.TransactionType] {
		errs.add("transaction_type", "transaction_type is not a valid type for this form")
	}
	if !assetTypes[in.AssetType] {
		errs.add("asset_type", "asset_type is not a valid type for this form")
	}

	assetName := strings.TrimSpace(in.AssetName)
	if assetName == "" {
		errs.add("asset_name", "asset_name is required")
	} else if len(assetName) > MaxAssetNameLen {
		errs.add("asset_name", "asset_name must be at most 100 characters")
	}

	if in.Amount <= 0 {
		errs.add("amount", "amount must be a positive number")
	} else if in.Amount > MaxAmount {
		errs.add("amount", "amount must be at most 1,000,000,000")
	}

	if in.Quantity != nil && *in.Quantity <= 0 {
		errs.add("quantity", "quantity must be a positive number")
	}
	if in.PricePerUnit != nil && *in.PricePerUnit <= 0 {
		errs.add("price_per_unit", "price_per_unit must be a positive number")
	}

	fees := decimal.Zero
	if in.Fees != nil {
		if *in.Fees < 0 || *in.Fees > MaxFees {
			errs.add("fees", "fees must be between 0 and 1,000,000")
		} else {
			fees = decimal.NewFromFloat(*in.Fees)
		}
	}

	date, dateErr := parseDate(in.TransactionDate)
	if dateErr != "" {
		errs.add("transaction_date", dateErr)
	}

	notes := strings.TrimSpace(in.Notes)
	if allowNotes && len(notes) > MaxNotesLen {
		errs.add("notes", "notes must be at most 500 characters")
	}
	if !allowNotes {
		notes = ""
	}

	if len(errs) > 0 {
		return nil, errs
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "completed"
	}

	out := &Normalized{
		TransactionType: models.TransactionType(in.TransactionType),
		AssetName:       assetName,
		AssetType:       in.AssetType,
		Amount:          decimal.NewFromFloat(in.Amount),
		Quantity:        in.Quantity,
		Fees:            fees,
		TransactionDate: date,
		Status:          status,
		Notes:           notes,
	}
	if in.PricePerUnit != nil {
		p := decimal.NewFromFloat(*in.PricePerUnit)
		out.PricePerUnit = &p
	}
	return out, nil
}

// add records a message for a field unless one is already present, so the
// first violated rule wins.
func (e FieldErrors) add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

func parseDate(s string) (time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "transaction_date is required"
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, ""
		}
	}
	return time.Time{}, "transaction_date must be a valid date (YYYY-MM-DD or RFC3339)"
}
