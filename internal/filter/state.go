package filter

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"socialstack/internal/model"
)

var (
	ErrInvalidSortKey    = errors.New("invalid sort key")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
	ErrInvalidPriceRange = errors.New("invalid price range")
)

// SortKey selects the comparator used by Sort.
type SortKey string

const (
	SortName   SortKey = "name"
	SortPrice  SortKey = "price"
	SortProfit SortKey = "profit"
	SortMargin SortKey = "margin"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortKey accepts only the known keys.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortName, SortPrice, SortProfit, SortMargin:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// ParseSortOrder accepts asc or desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, s)
}

// SortState is the active sort column and direction.
type SortState struct {
	Key   SortKey   `json:"key"`
	Order SortOrder `json:"order"`
}

// Toggle flips the direction when key is already active. A new key always
// starts descending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Order == Desc {
			return SortState{Key: key, Order: Asc}
		}
		return SortState{Key: key, Order: Desc}
	}
	return SortState{Key: key, Order: Desc}
}

// PriceRange is an inclusive USD bound.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains reports whether p lies within the range, both ends included.
func (r PriceRange) Contains(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(r.Min) && p.LessThanOrEqual(r.Max)
}

// State is the per-view filter state driven by the storefront UI.
type State struct {
	SearchQuery    string      `json:"q,omitempty"`
	ActiveGroup    string      `json:"group"`
	ActiveCategory string      `json:"category,omitempty"`
	ActiveType     string      `json:"type"`
	Regions        []string    `json:"regions,omitempty"`
	PriceRange     *PriceRange `json:"price_range,omitempty"`
	Sort           SortState   `json:"sort"`
}

// NewState returns the default browsing state.
func NewState() State {
	return State{
		ActiveGroup: model.All,
		ActiveType:  model.All,
		Sort:        SortState{Key: SortName, Order: Asc},
	}
}

// Validate rejects values the pipeline does not handle.
func (s State) Validate() error {
	if _, err := ParseSortKey(string(s.Sort.Key)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(s.Sort.Order)); err != nil {
		return err
	}
	if r := s.PriceRange; r != nil {
		if r.Min.IsNegative() || r.Min.GreaterThan(r.Max) {
			return fmt.Errorf("%w: [%s, %s]", ErrInvalidPriceRange, r.Min, r.Max)
		}
	}
	return nil
}

// SetGroup selects a group. The category is left as is and reconciled by
// Normalize against the catalog.
func (s *State) SetGroup(group string) {
	if group == "" {
		group = model.All
	}
	s.ActiveGroup = group
}

// SetCategory selects a category and resets the type facet, since types
// are scoped to a category.
func (s *State) SetCategory(category string) {
	if category != s.ActiveCategory {
		s.ActiveType = model.All
	}
	s.ActiveCategory = category
}

// SetType selects a type; an empty value means All.
func (s *State) SetType(typ string) {
	if typ == "" {
		typ = model.All
	}
	s.ActiveType = typ
}

// SetRegions replaces the region selection with a deduplicated, sorted set.
func (s *State) SetRegions(regions []string) {
	set := map[string]struct{}{}
	for _, r := range regions {
		if r = strings.TrimSpace(r); r != "" {
			set[r] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	if len(out) == 0 {
		out = nil
	}
	s.Regions = out
}

// ToggleSort applies SortState.Toggle in place.
func (s *State) ToggleSort(key SortKey) {
	s.Sort = s.Sort.Toggle(key)
}

// ParseState builds a validated State from query parameters:
// q, group, category, type, region (repeatable or comma separated), min,
// max, sort, order.
func ParseState(q url.Values) (State, error) {
	st := NewState()
	st.SearchQuery = q.Get("q")
	st.SetGroup(q.Get("group"))
	st.SetCategory(q.Get("category"))
	st.SetType(q.Get("type"))

	var regions []string
	for _, v := range q["region"] {
		regions = append(regions, strings.Split(v, ",")...)
	}
	st.SetRegions(regions)

	if q.Has("min") || q.Has("max") {
		r := PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(1 << 40)}
		if v := q.Get("min"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return State{}, fmt.Errorf("%w: min %q", ErrInvalidPriceRange, v)
			}
			r.Min = d
		}
		if v := q.Get("max"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return State{}, fmt.Errorf("%w: max %q", ErrInvalidPriceRange, v)
			}
			r.Max = d
		}
		st.PriceRange = &r
	}

	if v := q.Get("sort"); v != "" {
		k, err := ParseSortKey(v)
		if err != nil {
			return State{}, err
		}
		st.Sort.Key = k
	}
	if v := q.Get("order"); v != "" {
		o, err := ParseSortOrder(v)
		if err != nil {
			return State{}, err
		}
		st.Sort.Order = o
	}

	return st, st.Validate()
}
