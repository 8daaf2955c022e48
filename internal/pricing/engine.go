// Package pricing implements the cart pricing and discount engine.
//
// The engine is a pure computation: it receives an already-resolved list of
// cart items plus the full rule set and produces a deterministic price
// breakdown with upsell suggestions. It performs no I/O and keeps no state,
// so concurrent invocations need no coordination.
package pricing

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erendoru/panobu-api/internal/domain"
)

// DefaultOwnerKey is the group key used for panels without a commercial owner.
const DefaultOwnerKey = "default"

// ItemPrice holds the computed price for a single cart item
type ItemPrice struct {
	ItemID          uuid.UUID       `json:"item_id"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Weeks           int             `json:"weeks"`
}

// Suggestion describes the next unmet discount tier for a group of items
type Suggestion struct {
	PanelType        domain.PanelType `json:"panel_type"`
	OwnerName        string           `json:"owner_name"`
	CurrentCount     int              `json:"current_count"`
	NeededCount      int              `json:"needed_count"`
	DiscountPercent  *decimal.Decimal `json:"discount_percent,omitempty"`
	FixedUnitPrice   *decimal.Decimal `json:"fixed_unit_price,omitempty"`
	PotentialSavings decimal.Decimal  `json:"potential_savings"`
}

// Breakdown is the complete pricing result for a cart
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	ItemPrices  []ItemPrice     `json:"item_prices"`
	Suggestions []Suggestion    `json:"suggestions"`
	ItemCount   int             `json:"item_count"`
}

type groupKey struct {
	panelType domain.PanelType
	ownerName string
}

type group struct {
	key   groupKey
	items []domain.CartItem
}

// ComputeCartPricing computes a price breakdown for the given cart items under
// the given pricing rules.
//
// Items are grouped by (panel type, owner name); panels without an owner fall
// under the "default" owner key. Rules are filtered to active ones and
// evaluated in priority-descending order, ties broken by input order. The
// applied rule for a group is the first one, in that order, whose quantity
// threshold the group meets; the first unmet rule becomes the upsell
// suggestion. A rule's city scope is matched against the city of the group's
// first item only, since city is not part of the grouping key.
//
// Inputs are not validated; each item must carry its panel, and numeric fields
// are assumed sane. Empty inputs produce a zero breakdown.
func ComputeCartPricing(items []domain.CartItem, rules []domain.PricingRule) Breakdown {
	breakdown := Breakdown{
		Subtotal:    decimal.Zero,
		Discount:    decimal.Zero,
		Total:       decimal.Zero,
		ItemPrices:  make([]ItemPrice, 0, len(items)),
		Suggestions: []Suggestion{},
		ItemCount:   len(items),
	}

	active := make([]domain.PricingRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority > active[j].Priority
	})

	groups := groupItems(items)

	for _, g := range groups {
		candidates := matchingRules(active, g)

		var activeRule, nextRule *domain.PricingRule
		for i := range candidates {
			if candidates[i].MinQuantity <= len(g.items) {
				activeRule = &candidates[i]
				break
			}
		}
		for i := range candidates {
			if candidates[i].MinQuantity > len(g.items) {
				nextRule = &candidates[i]
				break
			}
		}

		for _, item := range g.items {
			weeks := rentalWeeks(item.StartDate, item.EndDate)
			original := item.Panel.WeeklyPrice.Mul(decimal.NewFromInt(int64(weeks)))
			discounted := applyRule(activeRule, original, weeks)

			breakdown.Subtotal = breakdown.Subtotal.Add(original)
			breakdown.Discount = breakdown.Discount.Add(original.Sub(discounted))
			breakdown.ItemPrices = append(breakdown.ItemPrices, ItemPrice{
				ItemID:          item.ID,
				OriginalPrice:   original,
				DiscountedPrice: discounted,
				Weeks:           weeks,
			})
		}

		if nextRule != nil {
			breakdown.Suggestions = append(breakdown.Suggestions, buildSuggestion(g, nextRule))
		}
	}

	breakdown.Total = breakdown.Subtotal.Sub(breakdown.Discount)
	return breakdown
}

// groupItems partitions items by (panel type, owner name), preserving the
// insertion order of first-seen keys.
func groupItems(items []domain.CartItem) []*group {
	var ordered []*group
	index := make(map[groupKey]*group)

	for _, item := range items {
		owner := DefaultOwnerKey
		if item.Panel.OwnerName != nil {
			owner = *item.Panel.OwnerName
		}
		key := groupKey{panelType: item.Panel.Type, ownerName: owner}

		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			ordered = append(ordered, g)
		}
		g.items = append(g.items, item)
	}

	return ordered
}

// matchingRules returns the rules whose scope matches the group. Unset scope
// fields match anything. City is checked against the group's first item.
func matchingRules(rules []domain.PricingRule, g *group) []domain.PricingRule {
	city := g.items[0].Panel.City

	var matched []domain.PricingRule
	for _, r := range rules {
		if r.PanelType != nil && *r.PanelType != g.key.panelType {
			continue
		}
		if r.OwnerName != nil && *r.OwnerName != g.key.ownerName {
			continue
		}
		if r.City != nil && *r.City != city {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// applyRule computes the discounted price for one item. A fixed unit price
// takes precedence over a percentage discount.
func applyRule(rule *domain.PricingRule, original decimal.Decimal, weeks int) decimal.Decimal {
	if rule == nil {
		return original
	}
	if rule.FixedUnitPrice != nil {
		return rule.FixedUnitPrice.Mul(decimal.NewFromInt(int64(weeks)))
	}
	if rule.DiscountPercent != nil {
		factor := decimal.NewFromInt(100).Sub(*rule.DiscountPercent)
		return original.Mul(factor).Div(decimal.NewFromInt(100))
	}
	return original
}

// buildSuggestion estimates the savings of growing a group to the next tier's
// threshold, on a single-week average price basis.
func buildSuggestion(g *group, next *domain.PricingRule) Suggestion {
	sum := decimal.Zero
	for _, item := range g.items {
		sum = sum.Add(item.Panel.WeeklyPrice)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(g.items))))
	tier := decimal.NewFromInt(int64(next.MinQuantity))

	var savings decimal.Decimal
	if next.FixedUnitPrice != nil {
		savings = avg.Sub(*next.FixedUnitPrice).Mul(tier)
	} else if next.DiscountPercent != nil {
		savings = avg.Mul(tier).Mul(*next.DiscountPercent).Div(decimal.NewFromInt(100))
	}

	return Suggestion{
		PanelType:        g.key.panelType,
		OwnerName:        g.key.ownerName,
		CurrentCount:     len(g.items),
		NeededCount:      next.MinQuantity - len(g.items),
		DiscountPercent:  next.DiscountPercent,
		FixedUnitPrice:   next.FixedUnitPrice,
		PotentialSavings: savings,
	}
}

// rentalWeeks derives the number of billed 7-day periods from a rental window.
// Day count is the absolute calendar-day difference rounded up; windows shorter
// than a week, or items with no dates, bill one week.
func rentalWeeks(start, end *time.Time) int {
	if start == nil || end == nil {
		return 1
	}
	days := math.Ceil(math.Abs(end.Sub(*start).Hours()) / 24)
	weeks := int(math.Ceil(days / 7))
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}
