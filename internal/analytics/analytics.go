// Package analytics computes the dashboard's prediction summaries from the
// loaded collections: ingredient demand forecasts, waste exposure, and
// sales statistics. It returns plain report structs; chart rendering is the
// presentation layer's concern.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cast"

	"shelflyfe/internal/models"
)

// Forecast is the projected demand for one ingredient.
type Forecast struct {
	SKU            string
	Name           string
	ProjectedUsage float64
	CurrentStock   int
	Shortfall      float64
	Reorder        bool
}

// DemandReport summarizes projected ingredient demand.
type DemandReport struct {
	Forecasts     []Forecast
	TopIngredient string
	AtRisk        int
	MeanProjected float64
}

// Demand projects next-period usage per ingredient from its order activity,
// scaled by the month-over-month trend the store tracks. Forecasts come
// back sorted by projected usage, highest first.
func Demand(ingredients []models.Ingredient) DemandReport {
	forecasts := make([]Forecast, 0, len(ingredients))
	projections := make([]float64, 0, len(ingredients))
	report := DemandReport{AtRisk: 0}

	for _, ing := range ingredients {
		projected := float64(ing.Orders) * (1 + parsePercent(ing.MonthIncrease))
		if projected < 0 {
			projected = 0
		}
		shortfall := projected - float64(ing.Stock)
		if shortfall < 0 {
			shortfall = 0
		}
		f := Forecast{
			SKU:            ing.SKU,
			Name:           ing.Name,
			ProjectedUsage: projected,
			CurrentStock:   ing.Stock,
			Shortfall:      shortfall,
			Reorder:        shortfall > 0 || ing.LowStock(),
		}
		if shortfall > 0 {
			report.AtRisk++
		}
		forecasts = append(forecasts, f)
		projections = append(projections, projected)
	}

	sort.SliceStable(forecasts, func(i, j int) bool {
		return forecasts[i].ProjectedUsage > forecasts[j].ProjectedUsage
	})
	report.Forecasts = forecasts
	if len(forecasts) > 0 {
		report.TopIngredient = forecasts[0].Name
	}
	if mean, err := stats.Mean(projections); err == nil {
		report.MeanProjected = mean
	}
	return report
}

// WasteReport is the value tied up in stock that will expire soon.
type WasteReport struct {
	ExpiringCount    int
	StockValueAtRisk float64
	PotentialSavings float64
}

// Waste sums the stock value of ingredients expiring within the window
// after now. Potential savings assume expiring overstock above the warning
// threshold could have been left unordered.
func Waste(ingredients []models.Ingredient, now time.Time, window time.Duration) WasteReport {
	report := WasteReport{}
	deadline := now.Add(window)
	for _, ing := range ingredients {
		expiry, err := time.Parse("2006-01-02", ing.ExpiryDate)
		if err != nil {
			continue
		}
		if expiry.Before(now) || expiry.After(deadline) {
			continue
		}
		report.ExpiringCount++
		report.StockValueAtRisk += float64(ing.Stock) * ing.Price
		if overstock := ing.Stock - ing.Threshold; overstock > 0 {
			report.PotentialSavings += float64(overstock) * ing.Price
		}
	}
	return report
}

// SalesSummary describes revenue over a series of order batches.
type SalesSummary struct {
	Batches int
	Total   float64
	Mean    float64
	Median  float64
	StdDev  float64
}

// Sales computes summary statistics over batch revenues. An empty series
// yields a zero summary.
func Sales(revenues []float64) SalesSummary {
	summary := SalesSummary{Batches: len(revenues)}
	if len(revenues) == 0 {
		return summary
	}
	summary.Total, _ = stats.Sum(revenues)
	summary.Mean, _ = stats.Mean(revenues)
	summary.Median, _ = stats.Median(revenues)
	summary.StdDev, _ = stats.StandardDeviation(revenues)
	return summary
}

// BatchRevenue prices an entered order batch against the menu.
func BatchRevenue(counts map[string]models.OrderCount, menu []models.MenuItem) float64 {
	prices := make(map[string]float64, len(menu))
	for _, item := range menu {
		prices[item.ID] = item.Price
	}
	total := 0.0
	for id, entry := range counts {
		total += prices[id] * float64(entry.Count)
	}
	return total
}

// parsePercent reads trend strings like "+10%" or "-5%" as fractions.
// Anything unparseable counts as flat.
func parsePercent(raw string) float64 {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	raw = strings.TrimPrefix(raw, "+")
	if raw == "" {
		return 0
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0
	}
	return value / 100
}
