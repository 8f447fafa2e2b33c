package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	dominv "github.com/tu-usuario/stock-ledger/internal/domain/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// DefaultAlertPollInterval intervalo por defecto del sondeo de alertas.
const DefaultAlertPollInterval = 30 * time.Second

// alertScanPageSize tamaño de página del barrido de inventario.
const alertScanPageSize = 200

// AlertUseCase deriva alertas de stock bajo/exceso a partir de los registros de
// inventario. Solo lee; se recalcula bajo demanda o en un intervalo de sondeo.
type AlertUseCase struct {
	invRepo repository.InventoryRepository
	log     *logger.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(invRepo repository.InventoryRepository, log *logger.Logger) *AlertUseCase {
	return &AlertUseCase{invRepo: invRepo, log: log}
}

// Scan recorre todos los registros de inventario por páginas y devuelve las
// alertas vigentes. El barrido es finito y reiniciable: cada llamada parte de cero.
func (uc *AlertUseCase) Scan(ctx context.Context) ([]dto.AlertDTO, error) {
	var alerts []dto.AlertDTO
	afterID := ""
	for {
		page, err := uc.invRepo.ListPage(ctx, afterID, alertScanPageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			return alerts, nil
		}
		for _, rec := range page {
			severity := dominv.Severity(rec.OnHand, rec.ReorderPoint, rec.MaximumStock)
			if severity == dominv.SeverityNone {
				continue
			}
			alerts = append(alerts, dto.AlertDTO{
				InventoryID:  rec.ID,
				ProductID:    rec.ProductID,
				StoreID:      rec.StoreID,
				Severity:     severity,
				OnHand:       rec.OnHand,
				ReorderPoint: rec.ReorderPoint,
			})
		}
		afterID = page[len(page)-1].ID
	}
}

// Poll ejecuta Scan en el intervalo indicado hasta que el contexto se cancele,
// registrando en el log las alertas encontradas. Pensado para correr en goroutine.
func (uc *AlertUseCase) Poll(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultAlertPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alerts, err := uc.Scan(ctx)
			if err != nil {
				uc.log.Error().Err(err).Msg("barrido de alertas de stock")
				continue
			}
			for _, a := range alerts {
				uc.log.Warn().
					Str("inventory_id", a.InventoryID).
					Str("store_id", a.StoreID).
					Str("severity", a.Severity).
					Str("on_hand", a.OnHand.String()).
					Msg("alerta de stock")
			}
		}
	}
}
