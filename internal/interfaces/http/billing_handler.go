package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-retail/internal/application/billing"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
)

// BillingHandler maneja ventas y devoluciones (protegido).
type BillingHandler struct {
	processSale   *billing.ProcessSaleUseCase
	processReturn *billing.ProcessReturnUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(processSale *billing.ProcessSaleUseCase, processReturn *billing.ProcessReturnUseCase) *BillingHandler {
	return &BillingHandler{processSale: processSale, processReturn: processReturn}
}

// CreateSale godoc
// @Summary      Procesar venta
// @Description  Convierte un carrito en una venta confirmada descontando
//
//	inventario de forma atómica; devuelve la estructura de recibo.
//
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartRequest  true  "items, customer_id (opcional), payment_method, notes"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/sales [post]
func (h *BillingHandler) CreateSale(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "token inválido"))
	}
	var in dto.CartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	receipt, err := h.processSale.ProcessSale(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":       "success",
		"receipt_data": receipt,
	})
}

// GetSale godoc
// @Summary      Consultar venta
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Sale ID"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/sales/{id} [get]
func (h *BillingHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.processSale.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// ListSales godoc
// @Summary      Historial de ventas
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/billing/sales [get]
func (h *BillingHandler) ListSales(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_QUERY", "query inválida"))
	}
	page.DefaultPage()
	list, err := h.processSale.ListSales(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// CreateReturn godoc
// @Summary      Devolución completa de una venta
// @Description  Revierte la venta indicada: restaura stock y registra el
//
//	reembolso. A lo sumo una devolución por venta.
//
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true   "Sale ID"
// @Param        body  body  dto.ReturnRequest  false  "return_reason (opcional)"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/sales/{id}/return [post]
func (h *BillingHandler) CreateReturn(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Errorf("UNAUTHORIZED", "token inválido"))
	}
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	ret, err := h.processReturn.ProcessReturn(c.Context(), userID, c.Params("id"), in.ReturnReason)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// GetReturn godoc
// @Summary      Consultar devolución
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Return ID"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/returns/{id} [get]
func (h *BillingHandler) GetReturn(c *fiber.Ctx) error {
	ret, err := h.processReturn.GetReturn(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ret)
}

// ListReturns lista devoluciones con paginación.
func (h *BillingHandler) ListReturns(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_QUERY", "query inválida"))
	}
	page.DefaultPage()
	list, err := h.processReturn.ListReturns(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
