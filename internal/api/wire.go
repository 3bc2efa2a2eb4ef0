package api

import (
	"strings"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"

	"shelflyfe/internal/models"
)

// wireIngredient is an ingredient record as the store serves it. The store
// keeps the SKU in _id and the raw measurement label in stock_measurement.
type wireIngredient struct {
	ID               string  `json:"_id"`
	Name             string  `json:"name"`
	Stock            int     `json:"stock"`
	Price            float64 `json:"price"`
	WarningStock     int     `json:"warningStockAmount"`
	StockMeasurement string  `json:"stock_measurement"`
	ExpiryDate       string  `json:"expiry_date"`
	Orders           int     `json:"orders"`
	MonthIncrease    string  `json:"monthIncrease"`
	YearIncrease     string  `json:"yearIncrease"`
}

// ingredientPayload is the create/update request body.
type ingredientPayload struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Stock      int     `json:"stock"`
	Price      float64 `json:"price"`
	Threshold  int     `json:"threshold"`
	Unit       string  `json:"unit"`
	CustomUnit string  `json:"customUnit"`
	ExpiryDate string  `json:"expiry_date"`
}

// resupplyPayload is one row of the batch resupply request.
type resupplyPayload struct {
	SKU             string  `json:"sku"`
	ID              int64   `json:"id"`
	IsNewIngredient bool    `json:"isNewIngredient"`
	Supplier        string  `json:"supplier"`
	Name            string  `json:"name"`
	Stock           int     `json:"stock"`
	Price           float64 `json:"price"`
	ExpiryDate      string  `json:"expiryDate"`
	CustomUnit      string  `json:"customUnit"`
	Threshold       int     `json:"threshold"`
	Unit            string  `json:"unit"`
}

func fromWire(w wireIngredient) models.Ingredient {
	unit, customUnit := models.ClassifyMeasurement(w.StockMeasurement)
	return models.Ingredient{
		ID:            w.ID,
		SKU:           w.ID,
		Name:          w.Name,
		Stock:         w.Stock,
		Price:         w.Price,
		Unit:          unit,
		CustomUnit:    customUnit,
		Threshold:     w.WarningStock,
		ExpiryDate:    isoDate(w.ExpiryDate),
		Orders:        w.Orders,
		MonthIncrease: w.MonthIncrease,
		YearIncrease:  w.YearIncrease,
	}
}

func fromWireList(ws []wireIngredient) []models.Ingredient {
	out := make([]models.Ingredient, len(ws))
	for i, w := range ws {
		out[i] = fromWire(w)
	}
	return out
}

func toPayload(ing models.Ingredient) ingredientPayload {
	return ingredientPayload{
		SKU:        ing.SKU,
		Name:       ing.Name,
		Stock:      ing.Stock,
		Price:      ing.Price,
		Threshold:  ing.Threshold,
		Unit:       string(ing.Unit),
		CustomUnit: ing.CustomUnit,
		ExpiryDate: ing.ExpiryDate,
	}
}

func toResupplyPayload(items []models.ResupplyItem) []resupplyPayload {
	out := make([]resupplyPayload, len(items))
	for i, item := range items {
		out[i] = resupplyPayload{
			SKU:             item.SKU,
			ID:              numericID(item.ID),
			IsNewIngredient: item.IsNewIngredient,
			Supplier:        item.Supplier,
			Name:            item.Name,
			Stock:           item.Stock,
			Price:           item.Price,
			ExpiryDate:      item.ExpiryDate,
			CustomUnit:      item.CustomUnit,
			Threshold:       item.Threshold,
			Unit:            string(item.Unit),
		}
	}
	return out
}

// numericID converts a client-minted row id (a millisecond timestamp
// string) to the integer form the resupply endpoint expects.
func numericID(id string) int64 {
	return cast.ToInt64(id)
}

// isoDate reduces a store timestamp to the YYYY-MM-DD form the views use.
// The store is loose about formats on legacy rows, so parse leniently and
// fall back to chopping at the time separator.
func isoDate(raw string) string {
	if raw == "" {
		return ""
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t.Format("2006-01-02")
	}
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	return raw
}
