package inventory

import "github.com/shopspring/decimal"

// Severidades de alerta de stock.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityExcess = "EXCESS"
	SeverityNone   = ""
)

// Severity implementa la regla de severidad de alertas (servicio de dominio).
// HIGH   si OnHand <= 0 o OnHand < ReorderPoint/2
// MEDIUM si no es HIGH y OnHand <= ReorderPoint
// EXCESS si MaximumStock está definido y OnHand >= MaximumStock
// "" (sin alerta) en cualquier otro caso.
func Severity(onHand, reorderPoint decimal.Decimal, maximumStock *decimal.Decimal) string {
	two := decimal.NewFromInt(2)
	if onHand.LessThanOrEqual(decimal.Zero) || onHand.LessThan(reorderPoint.Div(two)) {
		return SeverityHigh
	}
	if onHand.LessThanOrEqual(reorderPoint) {
		return SeverityMedium
	}
	if maximumStock != nil && onHand.GreaterThanOrEqual(*maximumStock) {
		return SeverityExcess
	}
	return SeverityNone
}
