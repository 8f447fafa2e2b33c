package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stock-ledger/internal/domain/inventory"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func decPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// Tabla de umbrales de severidad.
func TestSeverity_Umbrales(t *testing.T) {
	cases := []struct {
		name     string
		onHand   int64
		reorder  int64
		max      *decimal.Decimal
		expected string
	}{
		{"stock en cero es HIGH", 0, 20, nil, inventory.SeverityHigh},
		{"stock negativo es HIGH", -3, 20, nil, inventory.SeverityHigh},
		{"bajo la mitad del reorden es HIGH", 5, 20, nil, inventory.SeverityHigh},
		{"justo en la mitad del reorden no es HIGH", 10, 20, nil, inventory.SeverityMedium},
		{"bajo el punto de reorden es MEDIUM", 15, 20, nil, inventory.SeverityMedium},
		{"exactamente en el reorden es MEDIUM", 20, 20, nil, inventory.SeverityMedium},
		{"sobre el máximo es EXCESS", 25, 20, decPtr(20), inventory.SeverityExcess},
		{"bajo el máximo no genera alerta", 25, 20, decPtr(30), inventory.SeverityNone},
		{"sin máximo definido no hay EXCESS", 100, 20, nil, inventory.SeverityNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.Severity(dec(tc.onHand), dec(tc.reorder), tc.max)
			assert.Equal(t, tc.expected, got)
		})
	}
}

// HIGH tiene precedencia sobre MEDIUM y EXCESS cuando varias condiciones aplican.
func TestSeverity_PrecedenciaHigh(t *testing.T) {
	// OnHand 0 con máximo 0 definido: HIGH gana sobre EXCESS.
	got := inventory.Severity(dec(0), dec(20), decPtr(0))
	assert.Equal(t, inventory.SeverityHigh, got)
}
