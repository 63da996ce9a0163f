package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialstack/internal/catalog"
	"socialstack/internal/model"
)

func labels(buckets []Bucket) []string {
	out := make([]string, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.Label)
	}
	return out
}

func TestGroup_BrowsingGroupsByType(t *testing.T) {
	items := catalog.Seed()[catalog.SMM]
	st := NewState()
	st.SetGroup("Video")

	got := Group(Apply(items, st), st)

	assert.Equal(t, []string{"Viral Views", "Real Followers", model.Other}, labels(got))
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "2001", got[0].Items[0].ID)
	assert.Equal(t, "2101", got[0].Items[1].ID)
}

func TestGroup_SearchCollapsesToOneBucket(t *testing.T) {
	items := catalog.Seed()[catalog.SMM]

	search := NewState()
	search.SearchQuery = "followers"

	typed := NewState()
	typed.SetType("Viral Views")

	regional := NewState()
	regional.SetRegions([]string{"USA"})

	for _, st := range []State{search, typed, regional} {
		got := Group(Apply(items, st), st)
		require.Len(t, got, 1)
		assert.Equal(t, SearchResults, got[0].Label)
		assert.NotEmpty(t, got[0].Items)
	}
}

func TestRun_NormalizesSortsAndGroups(t *testing.T) {
	items := catalog.Seed()[catalog.SMM]
	st := NewState()
	st.SetCategory("Spotify")
	st.SetGroup("Social")
	st.Sort = SortState{Key: SortPrice, Order: Desc}

	v := Run(items, st)

	assert.Equal(t, "Instagram", v.State.ActiveCategory)
	assert.Equal(t, 4, v.Total)
	assert.Equal(t, []string{"1004", "1001", "1002", "1003"}, ids(v.Items))
	assert.Equal(t, []string{"Engagement", "Real Followers", "Instant Likes", "Viral Views"}, labels(v.Buckets))
}

func TestFacetsFor(t *testing.T) {
	idx := catalog.Build(catalog.Seed()[catalog.SMM])
	st := NewState()
	st.SetGroup("Social")
	st.SetCategory("TikTok")

	f := FacetsFor(idx, st)

	assert.Equal(t, []string{model.All, "Social", "Video", "Music"}, f.Groups)
	assert.Equal(t, []string{"Instagram", "TikTok", "Facebook", "X (Twitter)"}, f.Categories)
	assert.Equal(t, []string{model.All, "Viral Views", "Real Followers", "Instant Likes"}, f.Types)
	require.NotNil(t, f.PriceMin)
	require.NotNil(t, f.PriceMax)
	assert.Equal(t, "0.05", f.PriceMin.String())
	assert.Equal(t, "12", f.PriceMax.String())
}

func TestFacetsFor_EmptyCatalog(t *testing.T) {
	f := FacetsFor(catalog.Build(nil), NewState())

	assert.Equal(t, []string{model.All}, f.Groups)
	assert.Empty(t, f.Categories)
	assert.Nil(t, f.PriceMin)
}
