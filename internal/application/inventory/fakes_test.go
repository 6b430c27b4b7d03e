package inventory_test

import (
	"context"
	"strings"

	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: implementan los puertos de repositorio y el TxRunner con
// semántica de rollback real (snapshot + restore), para poder verificar
// atomicidad sin una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeProductRepo) Search(query string, limit int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.IsActive && strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.IsLowStock() {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Deactivate(id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) DecrementStock(id string, qty int) error {
	p, ok := r.products[id]
	if !ok || p.StockQuantity < qty {
		return domain.ErrStockDiscrepancy
	}
	p.StockQuantity -= qty
	return nil
}

func (r *fakeProductRepo) IncrementStock(id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

func (r *fakeProductRepo) snapshot() map[string]entity.Product {
	snap := make(map[string]entity.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = *p
	}
	return snap
}

func (r *fakeProductRepo) restore(snap map[string]entity.Product) {
	r.products = make(map[string]*entity.Product, len(snap))
	for id := range snap {
		p := snap[id]
		r.products[id] = &p
	}
}

type fakeAdjustmentRepo struct {
	adjustments []*entity.StockAdjustment
}

func (r *fakeAdjustmentRepo) Create(a *entity.StockAdjustment) error {
	cp := *a
	r.adjustments = append(r.adjustments, &cp)
	return nil
}

func (r *fakeAdjustmentRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	var list []*entity.StockAdjustment
	for _, a := range r.adjustments {
		if a.ProductID == productID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (r *fakeAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	return r.adjustments, nil
}

type fakePurchaseRepo struct {
	purchases map[string]*entity.Purchase
	items     []*entity.PurchaseItem
	failItems bool
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: make(map[string]*entity.Purchase)}
}

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	if r.failItems {
		return domain.ErrInvalidInput
	}
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePurchaseRepo) GetItemsByPurchaseID(purchaseID string) ([]*entity.PurchaseItem, error) {
	var list []*entity.PurchaseItem
	for _, item := range r.items {
		if item.PurchaseID == purchaseID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	for _, p := range r.purchases {
		list = append(list, p)
	}
	return list, nil
}

// fakeTxRunner implementa inventory.TxRunner e inventory.PurchaseTxRunner con
// rollback por snapshot: si el callback falla, el estado vuelve al inicio de
// la "transacción".
type fakeTxRunner struct {
	products    *fakeProductRepo
	adjustments *fakeAdjustmentRepo
	purchases   *fakePurchaseRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	prodSnap := r.products.snapshot()
	adjSnap := len(r.adjustments.adjustments)
	if err := fn(r.products, r.adjustments); err != nil {
		r.products.restore(prodSnap)
		r.adjustments.adjustments = r.adjustments.adjustments[:adjSnap]
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	prodSnap := r.products.snapshot()
	itemSnap := len(r.purchases.items)
	headerSnap := make(map[string]*entity.Purchase, len(r.purchases.purchases))
	for id, p := range r.purchases.purchases {
		headerSnap[id] = p
	}
	if err := fn(r.products, r.purchases); err != nil {
		r.products.restore(prodSnap)
		r.purchases.items = r.purchases.items[:itemSnap]
		r.purchases.purchases = headerSnap
		return err
	}
	return nil
}
