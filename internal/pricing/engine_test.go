package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erendoru/panobu-api/internal/domain"
)

func newItem(panelType domain.PanelType, owner, city string, weeklyPrice int64) domain.CartItem {
	var ownerName *string
	if owner != "" {
		ownerName = &owner
	}
	return domain.CartItem{
		ID: uuid.New(),
		Panel: &domain.Panel{
			ID:          uuid.New(),
			Type:        panelType,
			OwnerName:   ownerName,
			City:        city,
			WeeklyPrice: decimal.NewFromInt(weeklyPrice),
		},
	}
}

func newItems(n int, panelType domain.PanelType, owner, city string, weeklyPrice int64) []domain.CartItem {
	items := make([]domain.CartItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, newItem(panelType, owner, city, weeklyPrice))
	}
	return items
}

func percentRule(name string, panelType domain.PanelType, minQty int, percent int64, priority int) domain.PricingRule {
	p := decimal.NewFromInt(percent)
	return domain.PricingRule{
		ID:              uuid.New(),
		Name:            name,
		PanelType:       &panelType,
		MinQuantity:     minQty,
		DiscountPercent: &p,
		Priority:        priority,
		IsActive:        true,
	}
}

func fixedRule(name string, panelType domain.PanelType, minQty int, unitPrice int64, priority int) domain.PricingRule {
	p := decimal.NewFromInt(unitPrice)
	return domain.PricingRule{
		ID:             uuid.New(),
		Name:           name,
		PanelType:      &panelType,
		MinQuantity:    minQty,
		FixedUnitPrice: &p,
		Priority:       priority,
		IsActive:       true,
	}
}

func TestComputeCartPricingEmptyCart(t *testing.T) {
	b := ComputeCartPricing(nil, []domain.PricingRule{percentRule("ten", domain.PanelTypeCLP, 1, 10, 0)})

	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.Discount.IsZero())
	assert.True(t, b.Total.IsZero())
	assert.Empty(t, b.ItemPrices)
	assert.Empty(t, b.Suggestions)
	assert.Equal(t, 0, b.ItemCount)
}

func TestComputeCartPricingNoRules(t *testing.T) {
	items := newItems(3, domain.PanelTypeBillboard, "Acme", "Istanbul", 2500)

	b := ComputeCartPricing(items, nil)

	assert.Equal(t, "7500", b.Subtotal.String())
	assert.True(t, b.Discount.IsZero())
	assert.Equal(t, "7500", b.Total.String())
	require.Len(t, b.ItemPrices, 3)
	for _, ip := range b.ItemPrices {
		assert.True(t, ip.OriginalPrice.Equal(ip.DiscountedPrice))
		assert.Equal(t, 1, ip.Weeks)
	}
	assert.Empty(t, b.Suggestions)
}

func TestComputeCartPricingIdempotent(t *testing.T) {
	items := newItems(4, domain.PanelTypeCLP, "Acme", "Kocaeli", 1200)
	rules := []domain.PricingRule{
		percentRule("four-plus", domain.PanelTypeCLP, 4, 10, 5),
		fixedRule("ten-plus", domain.PanelTypeCLP, 10, 900, 10),
	}

	first := ComputeCartPricing(items, rules)
	second := ComputeCartPricing(items, rules)

	assert.Equal(t, first, second)
}

func TestThresholdBoundary(t *testing.T) {
	rules := []domain.PricingRule{percentRule("bulk", domain.PanelTypeCLP, 20, 25, 0)}

	below := ComputeCartPricing(newItems(19, domain.PanelTypeCLP, "Acme", "Izmir", 1000), rules)
	assert.True(t, below.Discount.IsZero())
	assert.Equal(t, "19000", below.Total.String())

	at := ComputeCartPricing(newItems(20, domain.PanelTypeCLP, "Acme", "Izmir", 1000), rules)
	assert.Equal(t, "5000", at.Discount.String())
	assert.Equal(t, "15000", at.Total.String())
}

func TestFixedPricePrecedence(t *testing.T) {
	rule := fixedRule("fixed", domain.PanelTypeBillboard, 1, 800, 0)
	percent := decimal.NewFromInt(50)
	rule.DiscountPercent = &percent

	b := ComputeCartPricing(newItems(1, domain.PanelTypeBillboard, "Acme", "Ankara", 1000), []domain.PricingRule{rule})

	require.Len(t, b.ItemPrices, 1)
	assert.Equal(t, "800", b.ItemPrices[0].DiscountedPrice.String())
	assert.Equal(t, "200", b.Discount.String())
}

func TestHigherPriorityRuleWins(t *testing.T) {
	// Lower-priority rule listed first; priority must decide, not list order.
	rules := []domain.PricingRule{
		percentRule("small", domain.PanelTypeCLP, 2, 5, 1),
		percentRule("big", domain.PanelTypeCLP, 2, 20, 10),
	}

	b := ComputeCartPricing(newItems(2, domain.PanelTypeCLP, "Acme", "Bursa", 1000), rules)

	assert.Equal(t, "400", b.Discount.String())
	assert.Equal(t, "1600", b.Total.String())
}

func TestPriorityTieKeepsInputOrder(t *testing.T) {
	rules := []domain.PricingRule{
		percentRule("first", domain.PanelTypeCLP, 2, 10, 5),
		percentRule("second", domain.PanelTypeCLP, 2, 30, 5),
	}

	b := ComputeCartPricing(newItems(2, domain.PanelTypeCLP, "Acme", "Bursa", 1000), rules)

	// Stable sort: "first" stays ahead of "second" at equal priority.
	assert.Equal(t, "200", b.Discount.String())
}

func TestInactiveRulesExcluded(t *testing.T) {
	rule := percentRule("dormant", domain.PanelTypeCLP, 1, 50, 100)
	rule.IsActive = false

	b := ComputeCartPricing(newItems(3, domain.PanelTypeCLP, "Acme", "Adana", 1000), []domain.PricingRule{rule})

	assert.True(t, b.Discount.IsZero())
	assert.Empty(t, b.Suggestions)
}

func TestRentalWeeks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		end   time.Time
		weeks int
	}{
		{"seven days is one week", start.AddDate(0, 0, 7), 1},
		{"fourteen days is two weeks", start.AddDate(0, 0, 14), 2},
		{"eight days rounds up", start.AddDate(0, 0, 8), 2},
		{"same day bills one week", start, 1},
		{"reversed dates use absolute difference", start.AddDate(0, 0, -10), 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := newItem(domain.PanelTypeBillboard, "Acme", "Istanbul", 1000)
			item.StartDate = &start
			item.EndDate = &tc.end

			b := ComputeCartPricing([]domain.CartItem{item}, nil)

			require.Len(t, b.ItemPrices, 1)
			assert.Equal(t, tc.weeks, b.ItemPrices[0].Weeks)
			assert.Equal(t, decimal.NewFromInt(int64(tc.weeks)*1000).String(), b.ItemPrices[0].OriginalPrice.String())
		})
	}
}

func TestWeeksWithoutDatesDefaultsToOne(t *testing.T) {
	b := ComputeCartPricing(newItems(1, domain.PanelTypeCLP, "", "Istanbul", 500), nil)

	require.Len(t, b.ItemPrices, 1)
	assert.Equal(t, 1, b.ItemPrices[0].Weeks)
}

func TestFixedPriceAppliedPerWeek(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	item := newItem(domain.PanelTypeCLP, "Acme", "Istanbul", 2000)
	item.StartDate = &start
	item.EndDate = &end

	b := ComputeCartPricing([]domain.CartItem{item}, []domain.PricingRule{
		fixedRule("fixed", domain.PanelTypeCLP, 1, 1500, 0),
	})

	require.Len(t, b.ItemPrices, 1)
	assert.Equal(t, "4000", b.ItemPrices[0].OriginalPrice.String())
	assert.Equal(t, "3000", b.ItemPrices[0].DiscountedPrice.String())
}

func TestEndToEndCLPTier(t *testing.T) {
	city := "Kocaeli"
	rule := fixedRule("clp-kocaeli-20", domain.PanelTypeCLP, 20, 1500, 0)
	rule.City = &city

	b := ComputeCartPricing(newItems(20, domain.PanelTypeCLP, "X", "Kocaeli", 2000), []domain.PricingRule{rule})

	assert.Equal(t, "40000", b.Subtotal.String())
	assert.Equal(t, "10000", b.Discount.String())
	assert.Equal(t, "30000", b.Total.String())
	require.Len(t, b.ItemPrices, 20)
	for _, ip := range b.ItemPrices {
		assert.Equal(t, "1500", ip.DiscountedPrice.String())
	}
	assert.Empty(t, b.Suggestions, "group already at top tier")
}

func TestSuggestionForUnmetTier(t *testing.T) {
	rules := []domain.PricingRule{percentRule("bulk-15", domain.PanelTypeBillboard, 10, 15, 0)}

	b := ComputeCartPricing(newItems(5, domain.PanelTypeBillboard, "Y", "Istanbul", 1000), rules)

	assert.True(t, b.Discount.IsZero())
	require.Len(t, b.Suggestions, 1)
	s := b.Suggestions[0]
	assert.Equal(t, domain.PanelTypeBillboard, s.PanelType)
	assert.Equal(t, "Y", s.OwnerName)
	assert.Equal(t, 5, s.CurrentCount)
	assert.Equal(t, 5, s.NeededCount)
	assert.Equal(t, "1500", s.PotentialSavings.String())
}

func TestSuggestionWithFixedPriceTier(t *testing.T) {
	rules := []domain.PricingRule{fixedRule("bulk-fixed", domain.PanelTypeCLP, 10, 1500, 0)}

	b := ComputeCartPricing(newItems(4, domain.PanelTypeCLP, "X", "Kocaeli", 2000), rules)

	require.Len(t, b.Suggestions, 1)
	s := b.Suggestions[0]
	assert.Equal(t, 6, s.NeededCount)
	// (2000 - 1500) * 10
	assert.Equal(t, "5000", s.PotentialSavings.String())
}

func TestSuggestionPicksHighestPriorityUnmetRule(t *testing.T) {
	// The suggestion is the highest-priority unmet rule, not the one with the
	// numerically nearest threshold.
	rules := []domain.PricingRule{
		percentRule("near", domain.PanelTypeCLP, 6, 5, 1),
		percentRule("far", domain.PanelTypeCLP, 50, 30, 10),
	}

	b := ComputeCartPricing(newItems(4, domain.PanelTypeCLP, "Acme", "Izmir", 1000), rules)

	require.Len(t, b.Suggestions, 1)
	assert.Equal(t, 46, b.Suggestions[0].NeededCount)
}

func TestSuggestionAlongsideActiveRule(t *testing.T) {
	rules := []domain.PricingRule{
		percentRule("tier-one", domain.PanelTypeCLP, 4, 10, 1),
		percentRule("tier-two", domain.PanelTypeCLP, 10, 25, 2),
	}

	b := ComputeCartPricing(newItems(5, domain.PanelTypeCLP, "Acme", "Izmir", 1000), rules)

	assert.Equal(t, "500", b.Discount.String())
	require.Len(t, b.Suggestions, 1)
	assert.Equal(t, 5, b.Suggestions[0].NeededCount)
}

func TestGroupingByTypeAndOwner(t *testing.T) {
	items := append(
		newItems(2, domain.PanelTypeCLP, "Acme", "Istanbul", 1000),
		newItems(2, domain.PanelTypeCLP, "Beta", "Istanbul", 1000)...,
	)
	// Rule threshold of 4 is met only if owners were (wrongly) merged.
	rules := []domain.PricingRule{percentRule("bulk", domain.PanelTypeCLP, 4, 10, 0)}

	b := ComputeCartPricing(items, rules)

	assert.True(t, b.Discount.IsZero())
	assert.Len(t, b.Suggestions, 2)
}

func TestOwnerlessPanelsGroupUnderDefault(t *testing.T) {
	items := newItems(3, domain.PanelTypeBillboard, "", "Ankara", 1000)
	owner := DefaultOwnerKey
	rule := percentRule("default-owner", domain.PanelTypeBillboard, 3, 10, 0)
	rule.OwnerName = &owner

	b := ComputeCartPricing(items, []domain.PricingRule{rule})

	assert.Equal(t, "300", b.Discount.String())
}

func TestRuleScopeWildcards(t *testing.T) {
	wildcard := domain.PricingRule{
		ID:          uuid.New(),
		Name:        "everything",
		MinQuantity: 1,
		Priority:    0,
		IsActive:    true,
	}
	p := decimal.NewFromInt(10)
	wildcard.DiscountPercent = &p

	items := append(
		newItems(1, domain.PanelTypeCLP, "Acme", "Istanbul", 1000),
		newItems(1, domain.PanelTypeMegaboard, "Beta", "Izmir", 2000)...,
	)

	b := ComputeCartPricing(items, []domain.PricingRule{wildcard})

	assert.Equal(t, "300", b.Discount.String())
}

func TestCityScopeUsesFirstItemCity(t *testing.T) {
	city := "Istanbul"
	rule := percentRule("istanbul-only", domain.PanelTypeCLP, 2, 10, 0)
	rule.City = &city

	// Same group spans two cities; the first item's city decides the match.
	items := append(
		newItems(1, domain.PanelTypeCLP, "Acme", "Istanbul", 1000),
		newItems(1, domain.PanelTypeCLP, "Acme", "Izmir", 1000)...,
	)

	b := ComputeCartPricing(items, []domain.PricingRule{rule})
	assert.Equal(t, "200", b.Discount.String(), "rule applies to the whole group")

	reversed := []domain.CartItem{items[1], items[0]}
	b = ComputeCartPricing(reversed, []domain.PricingRule{rule})
	assert.True(t, b.Discount.IsZero(), "first item outside scope excludes the rule")
}

func TestUnmetHighPriorityRuleDoesNotBlockMetRule(t *testing.T) {
	rules := []domain.PricingRule{
		percentRule("big-tier", domain.PanelTypeCLP, 50, 40, 10),
		percentRule("small-tier", domain.PanelTypeCLP, 2, 10, 1),
	}

	b := ComputeCartPricing(newItems(3, domain.PanelTypeCLP, "Acme", "Izmir", 1000), rules)

	assert.Equal(t, "300", b.Discount.String())
	require.Len(t, b.Suggestions, 1)
	assert.Equal(t, 47, b.Suggestions[0].NeededCount)
}
