package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/infrastructure/xlsx"
)

// InventoryHandler maneja ajustes de stock, importación masiva y compras (protegido).
type InventoryHandler struct {
	ledger     *inventory.LedgerUseCase
	bulkImport *inventory.BulkImportUseCase
	purchases  *inventory.RecordPurchaseUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	bulkImport *inventory.BulkImportUseCase,
	purchases *inventory.RecordPurchaseUseCase,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, bulkImport: bulkImport, purchases: purchases}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con razón auditada y deja un registro
//
//	inmutable con el nivel antes/después.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, quantity_change (≠0), reason, notes"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "token inválido"))
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	adjustment, err := h.ledger.ApplyDelta(c.Context(), inventory.ApplyDeltaInput{
		ProductID: in.ProductID,
		UserID:    userID,
		Delta:     in.QuantityChange,
		Reason:    in.Reason,
		Notes:     in.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(adjustment)
}

// ListAdjustments godoc
// @Summary      Historial de ajustes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        limit       query  int     false  "máx. resultados (default 20)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/inventory/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_QUERY", "query inválida"))
	}
	page.DefaultPage()
	list, err := h.ledger.ListAdjustments(c.Context(), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// BulkUpload godoc
// @Summary      Importación masiva de stock desde .xlsx
// @Description  Lee un archivo con columna identificadora (Barcode, SKU o
//
//	ProductID) y NewQuantity; aplica las correcciones como un solo lote
//	transaccional y reporta filas omitidas.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo .xlsx"
// @Success      200   {object}  dto.BulkImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/bulk-upload [post]
func (h *InventoryHandler) BulkUpload(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "token inválido"))
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("MISSING_FILE", "se requiere el archivo en el campo 'file'"))
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_FILE", "solo se aceptan archivos .xlsx"))
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_FILE", "no se pudo abrir el archivo"))
	}
	defer f.Close()

	rows, err := xlsx.ReadStockRows(f)
	if err != nil {
		return writeError(c, err)
	}
	result, err := h.bulkImport.ImportStock(c.Context(), userID, fileHeader.Filename, rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// CreatePurchase godoc
// @Summary      Registrar compra a proveedor
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "supplier_name, invoice_number, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchases [post]
func (h *InventoryHandler) CreatePurchase(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "token inválido"))
	}
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	purchase, err := h.purchases.RecordPurchase(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetPurchase obtiene una compra con sus líneas.
func (h *InventoryHandler) GetPurchase(c *fiber.Ctx) error {
	purchase, err := h.purchases.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(purchase)
}

// ListPurchases lista compras con paginación.
func (h *InventoryHandler) ListPurchases(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_QUERY", "query inválida"))
	}
	page.DefaultPage()
	list, err := h.purchases.ListPurchases(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
