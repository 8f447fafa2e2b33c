package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	dominv "github.com/tu-usuario/stock-ledger/internal/domain/inventory"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

func newAlertUseCase(s *memStore) *inventory.AlertUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return inventory.NewAlertUseCase(&memInventoryRepo{s: s}, log)
}

func TestAlertScan_SoloDevuelveFilasConAlerta(t *testing.T) {
	s := newMemStore()

	// Sin alerta: por encima del punto de reorden y sin tope
	ok := seedInventory(s, "inv-ok", "prod-1", "store-a", "50")
	ok.ReorderPoint = d("10")

	// MEDIUM: en el punto de reorden
	med := seedInventory(s, "inv-med", "prod-2", "store-a", "10")
	med.ReorderPoint = d("10")

	// HIGH: agotado
	high := seedInventory(s, "inv-high", "prod-3", "store-a", "0")
	high.ReorderPoint = d("10")

	// EXCESS: en o sobre el stock máximo
	max := d("40")
	exc := seedInventory(s, "inv-exc", "prod-4", "store-a", "45")
	exc.ReorderPoint = d("10")
	exc.MaximumStock = &max

	uc := newAlertUseCase(s)
	alerts, err := uc.Scan(context.Background())
	require.NoError(t, err)

	bySeverity := map[string]string{}
	for _, a := range alerts {
		bySeverity[a.InventoryID] = a.Severity
	}
	assert.Len(t, alerts, 3, "la fila sana no debe generar alerta")
	assert.Equal(t, dominv.SeverityMedium, bySeverity["inv-med"])
	assert.Equal(t, dominv.SeverityHigh, bySeverity["inv-high"])
	assert.Equal(t, dominv.SeverityExcess, bySeverity["inv-exc"])
}

func TestAlertScan_CriticoPorMitadDelPuntoDeReorden(t *testing.T) {
	s := newMemStore()
	rec := seedInventory(s, "inv-1", "prod-1", "store-a", "4")
	rec.ReorderPoint = d("10") // 4 < 10/2 → HIGH

	uc := newAlertUseCase(s)
	alerts, err := uc.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, dominv.SeverityHigh, alerts[0].Severity)
	assert.True(t, alerts[0].OnHand.Equal(d("4")))
	assert.True(t, alerts[0].ReorderPoint.Equal(d("10")))
}

func TestAlertScan_InventarioVacio(t *testing.T) {
	s := newMemStore()
	uc := newAlertUseCase(s)

	alerts, err := uc.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
