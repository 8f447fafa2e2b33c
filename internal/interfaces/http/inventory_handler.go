package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de inventario: registro de
// movimientos, historial, listado con filtros e importación masiva (protegido).
type InventoryHandler struct {
	ledger   *inventory.LedgerUseCase
	query    *inventory.QueryUseCase
	importer *inventory.ImportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, query *inventory.QueryUseCase, importer *inventory.ImportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, query: query, importer: importer}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "inventory_id, type, quantity, reference, description"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.RecordMovement(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inventario con filtros
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Subcadena sobre SKU o nombre"
// @Param        store_id  query  string  false  "Filtrar por tienda"
// @Param        status    query  string  false  "ACTIVE | INACTIVE | DISCONTINUED"
// @Param        low_stock query  bool    false  "Solo filas en o bajo el punto de reorden"
// @Param        expiring_within_days query int false "Vencimiento dentro de N días"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var in dto.InventoryQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	out, err := h.query.List(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro de inventario por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetHistory godoc
// @Summary      Historial de movimientos de un inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del inventario"
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/history [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 20)}
	out, err := h.ledger.GetHistory(c.Context(), id, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importación masiva de inventario
// @Description  Acepta JSON (dto.ImportRequest) o CSV (multipart "file" + store_id).
//
//	Los errores se reportan por fila; las filas válidas entran igual.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ImportSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, err := parseImportCSV(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CSV", Message: err.Error()})
		}
		in = *parsed
	} else if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.importer.Import(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseImportCSV lee el archivo "file" del multipart y decodifica sus filas.
func parseImportCSV(c *fiber.Ctx) (*dto.ImportRequest, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := decodeImportRows(f)
	if err != nil {
		return nil, err
	}
	return &dto.ImportRequest{StoreID: c.FormValue("store_id"), Rows: rows}, nil
}

// decodeImportRows decodifica un CSV con columnas:
// sku,quantity,minimum_stock,maximum_stock,reorder_point,reorder_quantity,location
// Un campo numérico ilegible no se descarta en silencio: marca la fila con
// ParseError y el caso de uso la reporta como fallida en el resumen.
func decodeImportRows(r io.Reader) ([]dto.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []dto.ImportRow
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && strings.EqualFold(rec[0], "sku") {
			continue // cabecera
		}
		row := dto.ImportRow{}
		// Campo vacío vale cero; solo el contenido ilegible marca la fila.
		field := func(name, raw string) decimal.Decimal {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				return decimal.Zero
			}
			d, err := decimal.NewFromString(raw)
			if err != nil && row.ParseError == "" {
				row.ParseError = fmt.Sprintf("%s inválido: %q", name, raw)
			}
			return d
		}
		if len(rec) > 0 {
			row.SKU = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			row.Quantity = field("quantity", rec[1])
		}
		if len(rec) > 2 {
			row.MinimumStock = field("minimum_stock", rec[2])
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			max := field("maximum_stock", rec[3])
			if row.ParseError == "" {
				row.MaximumStock = &max
			}
		}
		if len(rec) > 4 {
			row.ReorderPoint = field("reorder_point", rec[4])
		}
		if len(rec) > 5 {
			row.ReorderQuantity = field("reorder_quantity", rec[5])
		}
		if len(rec) > 6 {
			row.Location = strings.TrimSpace(rec[6])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
