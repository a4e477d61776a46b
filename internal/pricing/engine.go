// Package pricing computes the current ticket price for an event from its
// stored rule configuration, the time to the event, recent booking velocity
// and remaining inventory. Compute is pure: same inputs, same quote.
package pricing

import (
	"math"
	"time"

	"github.com/chanwit-s/ticketfair/internal/models"
)

const (
	RuleTimeBased      = "time-based"
	RuleDemandBased    = "demand-based"
	RuleInventoryBased = "inventory-based"
)

// VelocityWindow is the trailing window over which booking velocity is
// counted. Callers must supply a velocity measured over this window.
const VelocityWindow = time.Hour

// Adjustment records one applied rule. Fraction is the multiplier minus one
// (0.08 means +8%), AdjustedPrice the running price after the rule.
type Adjustment struct {
	Rule          string  `json:"rule"`
	Fraction      float64 `json:"adjustment"`
	AdjustedPrice float64 `json:"adjustedPrice"`
}

type Quote struct {
	CurrentPrice float64      `json:"currentPrice"`
	BasePrice    float64      `json:"basePrice"`
	Adjustments  []Adjustment `json:"adjustments"`
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Compute applies the three rules in fixed order. The time rule recomputes
// from the base price; the demand and inventory rules compound onto the
// running price. That asymmetry is deliberate and must not be "fixed".
// The final price is clamped to [floor, ceiling] and rounded to 2 decimals;
// intermediate arithmetic keeps full precision.
func (e *Engine) Compute(event *models.Event, velocity int, now time.Time) Quote {
	rules := event.PricingRules
	price := event.BasePrice
	var adjustments []Adjustment

	if rules.TimeBased.Enabled {
		fraction := timeAdjustment(event.Date, rules.TimeBased.Weight, now)
		if fraction > 0 {
			price = event.BasePrice * (1 + fraction)
			adjustments = append(adjustments, Adjustment{
				Rule:          RuleTimeBased,
				Fraction:      fraction,
				AdjustedPrice: price,
			})
		}
	}

	if rules.DemandBased.Enabled {
		fraction := demandAdjustment(velocity, rules.DemandBased)
		if fraction > 0 {
			price *= 1 + fraction
			adjustments = append(adjustments, Adjustment{
				Rule:          RuleDemandBased,
				Fraction:      fraction,
				AdjustedPrice: price,
			})
		}
	}

	if rules.InventoryBased.Enabled && event.TotalTickets > 0 {
		remainingRatio := float64(event.TotalTickets-event.BookedTickets) / float64(event.TotalTickets)
		if remainingRatio <= rules.InventoryBased.LowInventoryThreshold {
			fraction := inventoryAdjustment(remainingRatio, rules.InventoryBased)
			price *= 1 + fraction
			adjustments = append(adjustments, Adjustment{
				Rule:          RuleInventoryBased,
				Fraction:      fraction,
				AdjustedPrice: price,
			})
		}
	}

	price = math.Max(event.FloorPrice, math.Min(event.CeilingPrice, price))

	return Quote{
		CurrentPrice: round2(price),
		BasePrice:    event.BasePrice,
		Adjustments:  adjustments,
	}
}

// timeAdjustment steps up as the event date approaches: +50% inside a day,
// +20% inside a week, +10% inside two weeks, scaled by the rule weight.
func timeAdjustment(eventDate time.Time, weight float64, now time.Time) float64 {
	daysToEvent := eventDate.Sub(now).Hours() / 24

	switch {
	case daysToEvent <= 1:
		return 0.5 * weight
	case daysToEvent <= 7:
		return 0.2 * weight
	case daysToEvent <= 14:
		return 0.1 * weight
	}
	return 0
}

// demandAdjustment scales with velocity above the threshold, capped at the
// configured increase percent.
func demandAdjustment(velocity int, rule models.DemandRule) float64 {
	if velocity <= rule.VelocityThreshold || rule.VelocityThreshold <= 0 {
		return 0
	}
	excess := float64(velocity - rule.VelocityThreshold)
	maxIncrease := rule.IncreasePercent / 100
	scaled := math.Min(excess/float64(rule.VelocityThreshold)*maxIncrease, maxIncrease)
	return scaled * rule.Weight
}

// inventoryAdjustment grows as the remaining ratio falls below the
// threshold; at zero remaining the full increase percent applies.
func inventoryAdjustment(remainingRatio float64, rule models.InventoryRule) float64 {
	scarcity := 1 - remainingRatio/rule.LowInventoryThreshold
	return rule.IncreasePercent / 100 * scarcity * rule.Weight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
