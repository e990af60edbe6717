package drug

import (
	"reflect"
	"testing"
)

func TestMatchingProductsSortedDistinct(t *testing.T) {
	records := []Record{
		{ProductA: "Tylenol ER", IngredientA: "acetaminophen", ProductB: "Warfarin", IngredientB: "warfarin"},
		{ProductA: "Tylenol", IngredientA: "acetaminophen", ProductB: "Aspirin", IngredientB: "aspirin"},
		{ProductA: "Tylenol", IngredientA: "acetaminophen", ProductB: "Ibuprofen", IngredientB: "ibuprofen"},
	}
	got := MatchingProducts(records, "ty")
	want := []string{"Tylenol", "Tylenol ER"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchingProducts = %v, want %v", got, want)
	}
}

func TestMatchingProductsIgnoresIngredientOnlyHits(t *testing.T) {
	// The store search that produced these records may have matched on an
	// ingredient column; the resolver must not report products that do not
	// themselves contain the query.
	records := []Record{
		{ProductA: "Brandname", IngredientA: "acetaminophen", ProductB: "Other", IngredientB: "x"},
	}
	if got := MatchingProducts(records, "acetamin"); len(got) != 0 {
		t.Fatalf("expected no products, got %v", got)
	}
}

func TestMatchingProductsShortQuery(t *testing.T) {
	records := []Record{{ProductA: "Tylenol", ProductB: "Aspirin"}}
	if got := MatchingProducts(records, "t"); len(got) != 0 {
		t.Fatalf("short query must resolve nothing, got %v", got)
	}
}

func TestIngredientsLiteralCaseInsensitive(t *testing.T) {
	records := []Record{
		{ProductA: "Tylenol (ER)", IngredientA: "acetaminophen", ProductB: "Aspirin", IngredientB: "aspirin"},
		{ProductA: "Other", IngredientA: "nope", ProductB: "TYLENOL (ER) 100mg", IngredientB: "caffeine"},
	}
	got := Ingredients(records, "Tylenol (ER)")
	want := []string{"acetaminophen", "caffeine"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ingredients = %v, want %v", got, want)
	}
}

func TestIngredientsPunctuationIsLiteral(t *testing.T) {
	// "(ER)" must not act as a regex group: only the exact bracketed name matches.
	records := []Record{
		{ProductA: "TylenolER", IngredientA: "wrong", ProductB: "", IngredientB: ""},
	}
	if got := Ingredients(records, "Tylenol(ER)"); len(got) != 0 {
		t.Fatalf("expected no ingredients, got %v", got)
	}
}

func TestIngredientsFiltersJunkValues(t *testing.T) {
	records := []Record{
		{ProductA: "Tylenol", IngredientA: "nan", ProductB: "Tylenol", IngredientB: "a"},
		{ProductA: "Tylenol", IngredientA: "", ProductB: "Tylenol", IngredientB: "acetaminophen"},
	}
	got := Ingredients(records, "Tylenol")
	if len(got) != 1 || got[0] != "acetaminophen" {
		t.Fatalf("junk values not filtered: %v", got)
	}
}
