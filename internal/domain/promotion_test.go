package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPromotionValidate(t *testing.T) {
	start := fixedDate()
	end := start.AddDate(0, 0, 7)

	t.Run("ValidPromotion", func(t *testing.T) {
		promotion := NewPromotion("Summer Sale", start, end)
		assert.Empty(t, promotion.Validate())
	})

	t.Run("MissingName", func(t *testing.T) {
		promotion := NewPromotion("   ", start, end)
		assert.Contains(t, promotion.Validate(), "the name field must be supplied")
	})

	t.Run("NameTooLong", func(t *testing.T) {
		promotion := NewPromotion(strings.Repeat("x", 101), start, end)
		assert.Contains(t, promotion.Validate(), "the name field needs to have between 2 and 100 characters")
	})

	t.Run("NameLengthCountsRunesNotBytes", func(t *testing.T) {
		promotion := NewPromotion(strings.Repeat("ç", 60), start, end)
		assert.Empty(t, promotion.Validate())
	})

	t.Run("MissingDates", func(t *testing.T) {
		promotion := NewPromotion("Summer Sale", time.Time{}, time.Time{})
		assert.Contains(t, promotion.Validate(), "the start and end dates must be supplied")
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		promotion := NewPromotion("Summer Sale", end, start)
		assert.Contains(t, promotion.Validate(), "the start date must be before or equal to the end date")
	})

	t.Run("SingleDayWindowIsValid", func(t *testing.T) {
		promotion := NewPromotion("Flash Sale", start, start)
		assert.Empty(t, promotion.Validate())
	})
}

func TestPromotionActiveOn(t *testing.T) {
	start := fixedDate()
	end := start.AddDate(0, 0, 7)
	promotion := NewPromotion("Summer Sale", start, end)

	assert.True(t, promotion.ActiveOn(start), "start bound is inclusive")
	assert.True(t, promotion.ActiveOn(end), "end bound is inclusive")
	assert.True(t, promotion.ActiveOn(start.AddDate(0, 0, 3)))
	assert.False(t, promotion.ActiveOn(start.Add(-time.Second)))
	assert.False(t, promotion.ActiveOn(end.Add(time.Second)))
}

func TestPromotionOverlaps(t *testing.T) {
	start := fixedDate()
	end := start.AddDate(0, 0, 7)
	promotion := NewPromotion("Summer Sale", start, end)

	assert.True(t, promotion.Overlaps(start.AddDate(0, 0, 5), end.AddDate(0, 0, 5)))
	assert.True(t, promotion.Overlaps(end, end.AddDate(0, 0, 7)), "touching windows overlap")
	assert.False(t, promotion.Overlaps(end.AddDate(0, 0, 1), end.AddDate(0, 0, 8)))
	assert.False(t, promotion.Overlaps(start.AddDate(0, 0, -8), start.AddDate(0, 0, -1)))
}

func TestPromotionGameValidate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		discount int64
		valid    bool
	}{
		{"MinimumDiscount", 1, true},
		{"MaximumDiscount", 100, true},
		{"ZeroDiscount", 0, false},
		{"NegativeDiscount", -5, false},
		{"DiscountAbove100", 101, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			entry := NewPromotionGame(uuid.New(), uuid.New(), decimal.NewFromInt(tc.discount))
			if tc.valid {
				assert.Empty(t, entry.Validate())
			} else {
				assert.NotEmpty(t, entry.Validate())
			}
		})
	}
}

func TestDiscountedPrice(t *testing.T) {
	for _, tc := range []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"TwentyPercentOff", "50.00", "20", "40.00"},
		{"RoundsToCents", "19.99", "33", "13.39"},
		{"FullDiscount", "50.00", "100", "0.00"},
		{"OnePercent", "100.00", "1", "99.00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			entry := NewPromotionGame(uuid.New(), uuid.New(), decimal.RequireFromString(tc.discount))
			got := entry.DiscountedPrice(decimal.RequireFromString(tc.price))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s, want %s", got, tc.want)
		})
	}
}
