package filter

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/catalog"
	"socialstack/internal/model"
)

func priced(id, name, price, cost string) model.CatalogItem {
	return model.CatalogItem{
		ID: id, Name: name, Group: "G", Category: "C", Kind: model.PricingFlat, Per: 1,
		Price: decimal.RequireFromString(price), Cost: decimal.RequireFromString(cost),
	}
}

func TestSort_StableForEqualKeys(t *testing.T) {
	items := []model.CatalogItem{
		priced("a", "Alpha", "1.00", "0.50"),
		priced("b", "Bravo", "2.00", "1.00"),
		priced("c", "Charlie", "1.00", "0.50"),
		priced("d", "Delta", "2.00", "1.00"),
	}

	tests := []struct {
		key   SortKey
		order SortOrder
		want  []string
	}{
		{SortPrice, Asc, []string{"a", "c", "b", "d"}},
		{SortPrice, Desc, []string{"b", "d", "a", "c"}},
		{SortProfit, Asc, []string{"a", "c", "b", "d"}},
		{SortProfit, Desc, []string{"b", "d", "a", "c"}},
		{SortMargin, Asc, []string{"a", "b", "c", "d"}},
		{SortMargin, Desc, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key)+"_"+string(tt.order), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Sort(items, tt.key, tt.order)))
		})
	}
}

func TestSort_NameCaseInsensitive(t *testing.T) {
	items := []model.CatalogItem{
		priced("1", "beta", "1", "0"),
		priced("2", "Alpha", "1", "0"),
		priced("3", "ALPHA", "1", "0"),
		priced("4", "Gamma", "1", "0"),
	}

	assert.Equal(t, []string{"2", "3", "1", "4"}, ids(Sort(items, SortName, Asc)))
	assert.Equal(t, []string{"4", "1", "2", "3"}, ids(Sort(items, SortName, Desc)))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := catalog.Seed()[catalog.SMM]
	before := ids(items)

	_ = Sort(items, SortPrice, Desc)

	assert.Equal(t, before, ids(items))
}

func TestSort_ZeroCostMarginIsExtreme(t *testing.T) {
	items := []model.CatalogItem{
		priced("normal", "Normal", "2.50", "1.20"),
		priced("free", "Free Cost", "5", "0"),
		priced("nothing", "Nothing", "0", "0"),
		priced("loss", "Loss", "1", "2"),
	}

	desc := ids(Sort(items, SortMargin, Desc))
	require.Len(t, desc, 4)
	assert.Equal(t, "free", desc[0])
	assert.Equal(t, []string{"free", "normal", "nothing", "loss"}, desc)

	asc := ids(Sort(items, SortMargin, Asc))
	assert.Equal(t, "free", asc[len(asc)-1])
}

func TestSortState_Toggle(t *testing.T) {
	start := SortState{Key: SortMargin, Order: Asc}

	once := start.Toggle(SortMargin)
	assert.Equal(t, Desc, once.Order)
	assert.Equal(t, start, once.Toggle(SortMargin))

	for _, s := range []SortState{{SortName, Asc}, {SortName, Desc}} {
		assert.Equal(t, SortState{Key: SortProfit, Order: Desc}, s.Toggle(SortProfit))
	}
}

func TestState_ToggleSort(t *testing.T) {
	st := NewState()
	st.ToggleSort(SortPrice)
	assert.Equal(t, SortState{Key: SortPrice, Order: Desc}, st.Sort)
	st.ToggleSort(SortPrice)
	assert.Equal(t, SortState{Key: SortPrice, Order: Asc}, st.Sort)
}
