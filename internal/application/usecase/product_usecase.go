package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// nearExpiryWindow ventana para marcar productos próximos a vencer en el buscador.
const nearExpiryWindow = 10 * 24 * time.Hour

const expiryDateLayout = "2006-01-02"

// ProductUseCase gestiona el catálogo de productos. El stock NO se edita por
// aquí: toda mutación pasa por venta, devolución, compra o ajuste del ledger.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// CreateProduct registra un producto en el catálogo. El stock inicial se
// persiste con el producto; los ajustes posteriores quedan en el ledger.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Msg: "el nombre del producto es requerido"}
	}
	if in.SellingPrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, &domain.ValidationError{Msg: "los precios no pueden ser negativos"}
	}
	if in.StockQuantity < 0 {
		return nil, &domain.ValidationError{Msg: "el stock inicial no puede ser negativo"}
	}
	expiry, err := parseExpiry(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUniqueIdentifiers(in.Barcode, in.SKU, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              name,
		Description:       in.Description,
		Barcode:           strings.TrimSpace(in.Barcode),
		SKU:               strings.TrimSpace(in.SKU),
		Category:          in.Category,
		Brand:             in.Brand,
		PurchasePrice:     in.PurchasePrice,
		SellingPrice:      in.SellingPrice,
		StockQuantity:     in.StockQuantity,
		LowStockThreshold: in.LowStockThreshold,
		DiscountPercent:   in.DiscountPercent,
		IsActive:          true,
		ExpiryDate:        expiry,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// UpdateProduct actualiza los datos del catálogo (sin tocar el stock).
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Msg: "el nombre del producto es requerido"}
	}
	if in.SellingPrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, &domain.ValidationError{Msg: "los precios no pueden ser negativos"}
	}
	expiry, err := parseExpiry(in.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if err := uc.checkUniqueIdentifiers(in.Barcode, in.SKU, product.ID); err != nil {
		return nil, err
	}

	product.Name = name
	product.Description = in.Description
	product.Barcode = strings.TrimSpace(in.Barcode)
	product.SKU = strings.TrimSpace(in.SKU)
	product.Category = in.Category
	product.Brand = in.Brand
	product.PurchasePrice = in.PurchasePrice
	product.SellingPrice = in.SellingPrice
	product.LowStockThreshold = in.LowStockThreshold
	product.DiscountPercent = in.DiscountPercent
	product.ExpiryDate = expiry
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeactivateProduct marca el producto como inactivo. No se borra: las ventas
// y ajustes históricos lo siguen referenciando.
func (uc *ProductUseCase) DeactivateProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Deactivate(id)
}

// ListProducts lista el catálogo con paginación.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// SearchProducts busca productos activos por nombre, barcode o SKU para el
// buscador del punto de venta, marcando los próximos a vencer.
func (uc *ProductUseCase) SearchProducts(ctx context.Context, query string, limit int) ([]*dto.ProductSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*dto.ProductSearchResult{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.productRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(nearExpiryWindow)
	out := make([]*dto.ProductSearchResult, 0, len(list))
	for _, p := range list {
		nearExpiry := p.ExpiryDate != nil && p.StockQuantity > 0 && !p.ExpiryDate.After(cutoff)
		out = append(out, &dto.ProductSearchResult{
			ID:              p.ID,
			Text:            searchText(p),
			Name:            p.Name,
			Barcode:         p.Barcode,
			SKU:             p.SKU,
			Brand:           p.Brand,
			SellingPrice:    p.SellingPrice,
			PurchasePrice:   p.PurchasePrice,
			StockQuantity:   p.StockQuantity,
			DiscountPercent: p.DiscountPercent,
			IsNearExpiry:    nearExpiry,
		})
	}
	return out, nil
}

// ListLowStock lista productos activos en o bajo su umbral de reorden.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, limit int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.productRepo.ListLowStock(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// checkUniqueIdentifiers verifica que barcode y SKU no pertenezcan a otro
// producto. selfID excluye el propio producto al actualizar.
func (uc *ProductUseCase) checkUniqueIdentifiers(barcode, sku, selfID string) error {
	if b := strings.TrimSpace(barcode); b != "" {
		existing, err := uc.productRepo.GetByBarcode(b)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return domain.ErrDuplicate
		}
	}
	if s := strings.TrimSpace(sku); s != "" {
		existing, err := uc.productRepo.GetBySKU(s)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != selfID {
			return domain.ErrDuplicate
		}
	}
	return nil
}

func parseExpiry(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(expiryDateLayout, s)
	if err != nil {
		return nil, &domain.ValidationError{Msg: "fecha de vencimiento inválida, formato esperado YYYY-MM-DD"}
	}
	return &t, nil
}

func searchText(p *entity.Product) string {
	switch {
	case p.Barcode != "" && p.SKU != "":
		return fmt.Sprintf("%s (Barcode: %s, SKU: %s)", p.Name, p.Barcode, p.SKU)
	case p.Barcode != "":
		return fmt.Sprintf("%s (Barcode: %s)", p.Name, p.Barcode)
	case p.SKU != "":
		return fmt.Sprintf("%s (SKU: %s)", p.Name, p.SKU)
	}
	return p.Name
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Barcode:           p.Barcode,
		SKU:               p.SKU,
		Category:          p.Category,
		Brand:             p.Brand,
		PurchasePrice:     p.PurchasePrice,
		SellingPrice:      p.SellingPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		DiscountPercent:   p.DiscountPercent,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ExpiryDate != nil {
		resp.ExpiryDate = p.ExpiryDate.Format(expiryDateLayout)
	}
	return resp
}
