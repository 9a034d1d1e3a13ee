// Package portfolio derives display metrics from raw holdings. The
// aggregation is a pure fold: it never mutates its input, depends only on
// the multiset of holdings, and yields all-zero results for empty input.
package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"pesafolio/internal/models"
)

// AllocationBucket is an asset-type-grouped subtotal of portfolio value.
type AllocationBucket struct {
	AssetType string          `json:"asset_type"`
	Value     decimal.Decimal `json:"value"`
	Color     string          `json:"color"`
}

// Summary holds derived portfolio metrics for display.
type Summary struct {
	TotalValue    decimal.Decimal    `json:"total_value"`
	TotalInvested decimal.Decimal    `json:"total_invested"`
	TotalGain     decimal.Decimal    `json:"total_gain"`
	GainPercent   float64            `json:"gain_percent"`
	Allocation    []AllocationBucket `json:"allocation"`
}

// categoryColors assigns a stable color per known asset category.
var categoryColors = map[string]string{
	"stock":         "#2563eb",
	"etf":           "#0891b2",
	"bond":          "#16a34a",
	"reit":          "#d97706",
	"mmf":           "#7c3aed",
	"chama":         "#db2777",
	"sacco":         "#dc2626",
	"treasury_bill": "#0d9488",
	"land":          "#a16207",
	"real_estate":   "#9333ea",
	"livestock":     "#65a30d",
	"vehicle":       "#475569",
	"equipment":     "#0369a1",
	"other":         "#64748b",
}

// fallbackPalette colors categories outside the known set, indexed by the
// bucket's position in asset-type order so assignment stays deterministic.
var fallbackPalette = []string{
	"#84cc16", "#f59e0b", "#06b6d4", "#8b5cf6", "#ec4899", "#14b8a6",
}

// Summarize folds a list of holdings into total value, total invested,
// gain metrics, and an allocation breakdown grouped by asset type.
// Holdings with no current value contribute zero; gain percent is zero
// when nothing has been invested.
func Summarize(holdings []models.Holding) Summary {
	s := Summary{
		TotalValue:    decimal.Zero,
		TotalInvested: decimal.Zero,
		TotalGain:     decimal.Zero,
		Allocation:    []AllocationBucket{},
	}

	byType := make(map[string]decimal.Decimal)
	for i := range holdings {
		h := &holdings[i]

		value := decimal.Zero
		if h.CurrentValue != nil {
			value = *h.CurrentValue
		}
		s.TotalValue = s.TotalValue.Add(value)

		if h.AverageCost != nil {
			invested := h.AverageCost.Mul(decimal.NewFromFloat(h.Quantity))
			s.TotalInvested = s.TotalInvested.Add(invested)
		}

		byType[h.AssetType] = byType[h.AssetType].Add(value)
	}

	s.TotalGain = s.TotalValue.Sub(s.TotalInvested)
	if s.TotalInvested.IsPositive() {
		s.GainPercent = s.TotalGain.Div(s.TotalInvested).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	fallback := 0
	for _, t := range types {
		color, ok := categoryColors[t]
		if !ok {
			color = fallbackPalette[fallback%len(fallbackPalette)]
			fallback++
		}
		s.Allocation = append(s.Allocation, AllocationBucket{
			AssetType: t,
			Value:     byType[t],
			Color:     color,
		})
	}

	return s
}
