package schemagate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"socialstack/internal/model"
)

// go-playground/validator/v10: struct tags on model.CatalogItem carry the
// field-level rules; variant rules live in ValidateItem.
var validate = validator.New()

const (
	batchSize  = 100
	maxWorkers = 16
)

// Rejection records a rejected catalog item with reason.
type Rejection struct {
	Catalog string `json:"catalog"`
	Scope   string `json:"scope"`  // e.g. "item:1001"
	Reason  string `json:"reason"` // e.g. "item.per must be >= 1"
}

// ValidateItem performs item-level validation. An invalid item is discarded
// on its own; the rest of the catalog is still accepted.
func ValidateItem(ctx context.Context, item model.CatalogItem) (valid bool, rejectReason string) {
	if err := validate.StructCtx(ctx, item); err != nil {
		return false, describe(err)
	}
	if item.Price.IsNegative() {
		return false, "item.price negative"
	}
	if item.Cost.IsNegative() {
		return false, "item.cost negative"
	}
	switch item.Kind {
	case model.PricingRate:
		if item.Min > 0 && item.Max > 0 && item.Min > item.Max {
			return false, fmt.Sprintf("item.min %d exceeds item.max %d", item.Min, item.Max)
		}
	case model.PricingRegional:
		if len(item.Countries) == 0 {
			return false, "item.countries empty for regional item"
		}
	}
	return true, ""
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := "item." + strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " missing"
	case "oneof":
		return fmt.Sprintf("%s %q not one of [%s]", field, fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	}
}

// ProcessCatalog validates every item of a catalog in parallel batches.
// Accepted items keep their input order; duplicate IDs after the first
// occurrence are rejected.
func ProcessCatalog(ctx context.Context, catalogName string, items []model.CatalogItem) (accepted []model.CatalogItem, rejections []Rejection) {
	accepted = []model.CatalogItem{}
	rejections = []Rejection{}
	if len(items) == 0 {
		return accepted, rejections
	}

	batches := (len(items) + batchSize - 1) / batchSize
	workers := maxWorkers
	if batches < workers {
		workers = batches
	}

	// One slot per batch so results can be reassembled in catalog order.
	results := make([]batchResult, batches)
	jobs := make(chan int, batches)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				start := b * batchSize
				end := start + batchSize
				if end > len(items) {
					end = len(items)
				}
				results[b] = processBatch(ctx, catalogName, items[start:end])
			}
		}()
	}
	for b := 0; b < batches; b++ {
		jobs <- b
	}
	close(jobs)
	wg.Wait()

	seen := make(map[string]struct{}, len(items))
	for _, res := range results {
		rejections = append(rejections, res.rejections...)
		for _, it := range res.items {
			if _, dup := seen[it.ID]; dup {
				log.Warn().Str("catalog", catalogName).Str("item", it.ID).Msg("SchemaGate: duplicate item, skipping")
				rejections = append(rejections, Rejection{
					Catalog: catalogName,
					Scope:   "item:" + it.ID,
					Reason:  "duplicate item.id",
				})
				continue
			}
			seen[it.ID] = struct{}{}
			accepted = append(accepted, it)
		}
	}
	return accepted, rejections
}

type batchResult struct {
	items      []model.CatalogItem
	rejections []Rejection
}

func processBatch(ctx context.Context, catalogName string, items []model.CatalogItem) batchResult {
	res := batchResult{items: make([]model.CatalogItem, 0, len(items))}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			res.rejections = append(res.rejections, Rejection{Catalog: catalogName, Scope: "item:" + item.ID, Reason: err.Error()})
			continue
		}
		valid, reason := ValidateItem(ctx, item)
		if !valid {
			res.rejections = append(res.rejections, Rejection{
				Catalog: catalogName,
				Scope:   "item:" + item.ID,
				Reason:  reason,
			})
			log.Debug().Str("catalog", catalogName).Str("item", item.ID).Str("reason", reason).Msg("SchemaGate: rejected item")
			continue
		}
		res.items = append(res.items, item)
	}
	return res
}
