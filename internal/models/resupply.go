package models

import (
	"strings"

	"github.com/spf13/cast"
)

// ResupplyItem is a staged supplier/ingredient pair waiting for batch
// confirmation. Staged items live only in the client until the whole list
// is submitted in one request.
type ResupplyItem struct {
	ID              string  `json:"id"`
	SKU             string  `json:"sku"`
	IsNewIngredient bool    `json:"isNewIngredient"`
	Supplier        string  `json:"supplier"`
	Name            string  `json:"name"`
	Stock           int     `json:"stock"`
	Price           float64 `json:"price"`
	ExpiryDate      string  `json:"expiryDate"`
	CustomUnit      string  `json:"customUnit"`
	Threshold       int     `json:"threshold"`
	Unit            Unit    `json:"unit"`
}

// ResupplyDraft is the form state for a staged supplier/ingredient pair.
type ResupplyDraft struct {
	Supplier   string
	Name       string
	SKU        string
	Stock      string
	Price      string
	Unit       Unit
	CustomUnit string
	ExpiryDate string
	Threshold  string
}

// EmptyResupplyDraft returns a blank resupply form with defaults.
func EmptyResupplyDraft() ResupplyDraft {
	return ResupplyDraft{
		Unit:      UnitIndividual,
		Threshold: cast.ToString(DefaultThreshold),
	}
}

// DraftOfResupply loads a staged item back into form state for editing.
func DraftOfResupply(item ResupplyItem) ResupplyDraft {
	unit := item.Unit
	if unit == "" {
		unit = UnitIndividual
	}
	return ResupplyDraft{
		Supplier:   item.Supplier,
		Name:       item.Name,
		SKU:        item.SKU,
		Stock:      cast.ToString(item.Stock),
		Price:      cast.ToString(item.Price),
		Unit:       unit,
		CustomUnit: item.CustomUnit,
		ExpiryDate: item.ExpiryDate,
		Threshold:  cast.ToString(item.Threshold),
	}
}

// Validate applies the ingredient submission rules plus the supplier
// requirement specific to the resupply view.
func (d ResupplyDraft) Validate() FieldErrors {
	errs := IngredientDraft{
		Name:       d.Name,
		SKU:        d.SKU,
		Stock:      d.Stock,
		Price:      d.Price,
		Unit:       d.Unit,
		CustomUnit: d.CustomUnit,
		ExpiryDate: d.ExpiryDate,
		Threshold:  d.Threshold,
	}.Validate()
	if strings.TrimSpace(d.Supplier) == "" {
		errs["supplier"] = "Supplier is required"
	}
	return errs
}

// Item normalizes a validated draft into a staged resupply item. The caller
// supplies the client-minted id and the new-ingredient classification.
func (d ResupplyDraft) Item(id string, isNew bool) ResupplyItem {
	customUnit := d.CustomUnit
	if d.Unit != UnitCustom {
		customUnit = ""
	}
	threshold := DefaultThreshold
	if d.Threshold != "" {
		threshold = cast.ToInt(d.Threshold)
	}
	return ResupplyItem{
		ID:              id,
		SKU:             d.SKU,
		IsNewIngredient: isNew,
		Supplier:        d.Supplier,
		Name:            d.Name,
		Stock:           cast.ToInt(d.Stock),
		Price:           cast.ToFloat64(d.Price),
		ExpiryDate:      d.ExpiryDate,
		CustomUnit:      customUnit,
		Threshold:       threshold,
		Unit:            d.Unit,
	}
}
