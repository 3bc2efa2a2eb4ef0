package models

import (
	"strings"

	"github.com/spf13/cast"
)

// DefaultThreshold is applied when a draft leaves the warning threshold blank.
const DefaultThreshold = 10

// FieldErrors maps a draft field name to its validation message. An empty
// map means the draft passed validation.
type FieldErrors map[string]string

// Has reports whether the named field failed validation.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// IngredientDraft is a not-yet-persisted ingredient held in form state.
// Numeric fields stay strings so blank input can be told apart from zero;
// normalization to typed values happens in Ingredient after validation.
type IngredientDraft struct {
	Name       string
	SKU        string
	Stock      string
	Price      string
	Unit       Unit
	CustomUnit string
	ExpiryDate string
	Threshold  string
}

// EmptyDraft returns a blank draft with form defaults.
func EmptyDraft() IngredientDraft {
	return IngredientDraft{
		Unit:      UnitIndividual,
		Threshold: cast.ToString(DefaultThreshold),
	}
}

// DraftOf loads an existing record into form state for editing.
func DraftOf(ing Ingredient) IngredientDraft {
	unit := ing.Unit
	if unit == "" {
		unit = UnitIndividual
	}
	return IngredientDraft{
		Name:       ing.Name,
		SKU:        ing.SKU,
		Stock:      cast.ToString(ing.Stock),
		Price:      cast.ToString(ing.Price),
		Unit:       unit,
		CustomUnit: ing.CustomUnit,
		ExpiryDate: ing.ExpiryDate,
		Threshold:  cast.ToString(ing.Threshold),
	}
}

// Validate applies the submission rules and returns per-field errors.
// It is purely local; no remote call happens on a failed draft.
func (d IngredientDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(d.SKU) == "" {
		errs["sku"] = "SKU is required"
	}
	if stock, err := cast.ToIntE(d.Stock); d.Stock == "" || err != nil || stock <= 0 {
		errs["stock"] = "Stock must be greater than 0"
	}
	if d.Price != "" {
		if price, err := cast.ToFloat64E(d.Price); err != nil || price < 0 {
			errs["price"] = "Price cannot be negative"
		}
	}
	if d.ExpiryDate == "" {
		errs["expiryDate"] = "Expiry date is required"
	}
	if d.Threshold != "" {
		if threshold, err := cast.ToIntE(d.Threshold); err != nil || threshold < 0 {
			errs["threshold"] = "Threshold cannot be negative"
		}
	}
	return errs
}

// Ingredient normalizes a validated draft into a record. Blank price falls
// back to 0 and blank threshold to DefaultThreshold; the custom unit label
// is cleared unless the unit is custom.
func (d IngredientDraft) Ingredient() Ingredient {
	customUnit := d.CustomUnit
	if d.Unit != UnitCustom {
		customUnit = ""
	}
	threshold := DefaultThreshold
	if d.Threshold != "" {
		threshold = cast.ToInt(d.Threshold)
	}
	return Ingredient{
		ID:         d.SKU,
		SKU:        d.SKU,
		Name:       d.Name,
		Stock:      cast.ToInt(d.Stock),
		Price:      cast.ToFloat64(d.Price),
		Unit:       d.Unit,
		CustomUnit: customUnit,
		Threshold:  threshold,
		ExpiryDate: d.ExpiryDate,
	}
}
