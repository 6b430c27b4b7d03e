package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/application/usecase"
)

// ProductHandler maneja el catálogo de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	product, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID obtiene un producto por ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// Update actualiza los datos del catálogo de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_BODY", "cuerpo inválido"))
	}
	product, err := h.uc.UpdateProduct(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// Deactivate marca un producto como inactivo.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.DeactivateProduct(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto desactivado"})
}

// List lista el catálogo con paginación.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Errorf("INVALID_QUERY", "query inválida"))
	}
	page.DefaultPage()
	list, err := h.uc.ListProducts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Search godoc
// @Summary      Buscador del punto de venta
// @Description  Busca productos activos por nombre, barcode o SKU; marca los
//
//	próximos a vencer con stock disponible.
//
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  true   "término de búsqueda"
// @Param        limit  query  int     false  "máx. resultados (default 20)"
// @Success      200  {array}  dto.ProductSearchResult
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.SearchProducts(c.Context(), c.Query("q"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// LowStock lista productos activos en o bajo su umbral de reorden.
func (h *ProductHandler) LowStock(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.ListLowStock(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
