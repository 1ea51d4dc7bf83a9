package monitor

import (
	"github.com/KNICEX/price-alert/internal/entity"
)

// Evaluate 判断哪些预警规则被本轮行情触发
// Rules are scanned in insertion order. A rule whose asset has no quote,
// or whose quote price is not positive, is not yet priced this cycle and
// stays pending. The threshold comparison is inclusive on both sides:
// above fires at price >= threshold and below fires at price <= threshold,
// so a price exactly on the threshold fires in either direction. Each rule
// is visited exactly once per cycle, a fired rule is never re-examined.
//
// Evaluation is pure: removal from the pending set and dispatch are the
// caller's job.
func Evaluate(prices map[string]entity.Quote, pending []entity.AlertRule) []FiredAlert {
	fired := make([]FiredAlert, 0)
	for _, rule := range pending {
		quote, ok := prices[rule.Asset]
		if !ok || !quote.Price.IsPositive() {
			continue
		}
		switch rule.Direction {
		case entity.DirectionAbove:
			if quote.Price.GreaterThanOrEqual(rule.Threshold) {
				fired = append(fired, FiredAlert{Rule: rule, ObservedPrice: quote.Price})
			}
		case entity.DirectionBelow:
			if quote.Price.LessThanOrEqual(rule.Threshold) {
				fired = append(fired, FiredAlert{Rule: rule, ObservedPrice: quote.Price})
			}
		}
	}
	return fired
}
