package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion aggregates a sale window and the set of discounted games within
// it. The rule that a game cannot be in two promotions with overlapping
// windows is enforced by the promotion service at mutation time, since it
// requires a catalog-wide lookup.
type Promotion struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`

	GamesOnSale []PromotionGame `db:"-" json:"games_on_sale,omitempty"`
}

// NewPromotion creates a promotion covering the given window.
func NewPromotion(name string, startDate, endDate time.Time) *Promotion {
	return &Promotion{
		ID:        uuid.New(),
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

// Validate returns the list of broken catalog rules, empty when the promotion
// is valid.
func (p *Promotion) Validate() []string {
	var messages []string

	name := strings.TrimSpace(p.Name)
	nameLen := utf8.RuneCountInString(name)
	switch {
	case name == "":
		messages = append(messages, "the name field must be supplied")
	case nameLen < 2 || nameLen > 100:
		messages = append(messages, "the name field needs to have between 2 and 100 characters")
	}

	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		messages = append(messages, "the start and end dates must be supplied")
	} else if p.EndDate.Before(p.StartDate) {
		messages = append(messages, "the start date must be before or equal to the end date")
	}

	return messages
}

// ActiveOn reports whether t falls inside the sale window, bounds included.
func (p *Promotion) ActiveOn(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// Overlaps reports whether the given window intersects this promotion's.
func (p *Promotion) Overlaps(start, end time.Time) bool {
	return !end.Before(p.StartDate) && !start.After(p.EndDate)
}

// PromotionGame is a game's discount offer within a promotion.
type PromotionGame struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	PromotionID        uuid.UUID       `db:"promotion_id" json:"promotion_id"`
	GameID             uuid.UUID       `db:"game_id" json:"game_id"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage" json:"discount_percentage"`

	// Promotion carries the owning promotion's sale window when the entry was
	// loaded for a purchase; nil otherwise.
	Promotion *Promotion `db:"-" json:"-"`
}

// NewPromotionGame creates a discount offer for a game within a promotion.
func NewPromotionGame(promotionID, gameID uuid.UUID, discountPercentage decimal.Decimal) *PromotionGame {
	return &PromotionGame{
		ID:                 uuid.New(),
		PromotionID:        promotionID,
		GameID:             gameID,
		DiscountPercentage: discountPercentage,
	}
}

// Validate returns the list of broken catalog rules, empty when the entry is
// valid.
func (pg *PromotionGame) Validate() []string {
	var messages []string

	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	if pg.DiscountPercentage.LessThan(one) || pg.DiscountPercentage.GreaterThan(hundred) {
		messages = append(messages, "the discount percentage must be between 1 and 100")
	}

	return messages
}

// DiscountedPrice applies the discount to basePrice, rounded to cents.
func (pg *PromotionGame) DiscountedPrice(basePrice decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(pg.DiscountPercentage.Div(decimal.NewFromInt(100)))
	return basePrice.Mul(factor).Round(2)
}
