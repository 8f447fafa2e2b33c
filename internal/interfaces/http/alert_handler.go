package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
)

// AlertHandler expone las alertas de reposición calculadas bajo demanda.
type AlertHandler struct {
	uc *inventory.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas de stock
// @Description  Recorre el inventario y devuelve los registros con severidad
//
//	HIGH, MEDIUM o EXCESS según sus umbrales.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, err := h.uc.Scan(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AlertListResponse{Total: len(alerts), Alerts: alerts})
}
