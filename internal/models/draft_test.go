package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() IngredientDraft {
	return IngredientDraft{
		Name:       "Tomatoes",
		SKU:        "tomato-001",
		Stock:      "40",
		Price:      "2.50",
		Unit:       UnitKgs,
		ExpiryDate: "2026-09-04",
		Threshold:  "10",
	}
}

func TestDraftValidatePasses(t *testing.T) {
	assert.Empty(t, validDraft().Validate())
}

func TestDraftValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*IngredientDraft)
		field   string
		message string
	}{
		{"blank name", func(d *IngredientDraft) { d.Name = "" }, "name", "Name is required"},
		{"whitespace name", func(d *IngredientDraft) { d.Name = "   " }, "name", "Name is required"},
		{"blank sku", func(d *IngredientDraft) { d.SKU = "" }, "sku", "SKU is required"},
		{"blank stock", func(d *IngredientDraft) { d.Stock = "" }, "stock", "Stock must be greater than 0"},
		{"zero stock", func(d *IngredientDraft) { d.Stock = "0" }, "stock", "Stock must be greater than 0"},
		{"negative stock", func(d *IngredientDraft) { d.Stock = "-3" }, "stock", "Stock must be greater than 0"},
		{"non-numeric stock", func(d *IngredientDraft) { d.Stock = "lots" }, "stock", "Stock must be greater than 0"},
		{"negative price", func(d *IngredientDraft) { d.Price = "-1" }, "price", "Price cannot be negative"},
		{"non-numeric price", func(d *IngredientDraft) { d.Price = "cheap" }, "price", "Price cannot be negative"},
		{"blank expiry", func(d *IngredientDraft) { d.ExpiryDate = "" }, "expiryDate", "Expiry date is required"},
		{"negative threshold", func(d *IngredientDraft) { d.Threshold = "-5" }, "threshold", "Threshold cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			errs := d.Validate()
			require.True(t, errs.Has(tt.field), "expected error on %s", tt.field)
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestDraftValidateOptionalFields(t *testing.T) {
	d := validDraft()
	d.Price = ""
	d.Threshold = ""
	assert.Empty(t, d.Validate())

	d = validDraft()
	d.Price = "0"
	d.Threshold = "0"
	assert.Empty(t, d.Validate())
}

func TestDraftValidateCollectsAllErrors(t *testing.T) {
	errs := IngredientDraft{}.Validate()
	assert.Len(t, errs, 4)
	for _, field := range []string{"name", "sku", "stock", "expiryDate"} {
		assert.True(t, errs.Has(field), field)
	}
}

func TestDraftNormalization(t *testing.T) {
	d := validDraft()
	d.Price = ""
	d.Threshold = ""
	ing := d.Ingredient()

	assert.Equal(t, "tomato-001", ing.ID, "id follows the SKU on creation")
	assert.Equal(t, "tomato-001", ing.SKU)
	assert.Equal(t, 40, ing.Stock)
	assert.Equal(t, 0.0, ing.Price, "blank price defaults to 0")
	assert.Equal(t, DefaultThreshold, ing.Threshold, "blank threshold gets the default")
}

func TestDraftNormalizationClearsStaleCustomUnit(t *testing.T) {
	d := validDraft()
	d.Unit = UnitBags
	d.CustomUnit = "boxes"
	assert.Empty(t, d.Ingredient().CustomUnit)

	d.Unit = UnitCustom
	assert.Equal(t, "boxes", d.Ingredient().CustomUnit)
}

func TestEmptyDraftDefaults(t *testing.T) {
	d := EmptyDraft()
	assert.Equal(t, UnitIndividual, d.Unit)
	assert.Equal(t, "10", d.Threshold)
	assert.Empty(t, d.Name)
}

func TestDraftOfRoundTrip(t *testing.T) {
	ing := Ingredient{
		ID: "flour-003", SKU: "flour-003", Name: "Flour",
		Stock: 120, Price: 0.9, Unit: UnitBags,
		Threshold: 20, ExpiryDate: "2027-01-15",
	}
	d := DraftOf(ing)
	assert.Equal(t, "120", d.Stock)
	assert.Equal(t, "0.9", d.Price)
	assert.Empty(t, d.Validate())

	back := d.Ingredient()
	assert.Equal(t, ing, back)
}
