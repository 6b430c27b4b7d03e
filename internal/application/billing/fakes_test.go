package billing_test

import (
	"context"

	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// Fakes en memoria con rollback por snapshot, para verificar la atomicidad de
// ventas y devoluciones sin base de datos.

type fakeProductRepo struct {
	products map[string]*entity.Product
	// failDecrement simula una venta concurrente que consumió el stock entre
	// la validación y el commit.
	failDecrement bool
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
	return nil, nil
}

func (r *fakeProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Deactivate(id string) error { return nil }

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
	if r.failDecrement || !ok || p.StockQuantity < qty {
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

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
	// failGet simula un fallo de infraestructura en GetByID.
	failGet error
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		cp := *c
		r.customers[c.ID] = &cp
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for _, c := range r.customers {
		list = append(list, c)
	}
	return list, nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
	items []*entity.SaleItem
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var list []*entity.SaleItem
	for _, item := range r.items {
		if item.SaleID == saleID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for _, s := range r.sales {
		list = append(list, s)
	}
	return list, nil
}

type fakeReturnRepo struct {
	returns   map[string]*entity.SaleReturn
	items     []*entity.SaleReturnItem
	failItems bool
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[string]*entity.SaleReturn)}
}

func (r *fakeReturnRepo) Create(ret *entity.SaleReturn) error {
	// Misma garantía que UNIQUE(original_sale_id) en la tabla.
	for _, existing := range r.returns {
		if existing.OriginalSaleID == ret.OriginalSaleID {
			return domain.ErrDuplicateReturn
		}
	}
	cp := *ret
	r.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) CreateItem(item *entity.SaleReturnItem) error {
	if r.failItems {
		return domain.ErrInvalidInput
	}
	cp := *item
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeReturnRepo) GetByID(id string) (*entity.SaleReturn, error) {
	ret, ok := r.returns[id]
	if !ok {
		return nil, nil
	}
	return ret, nil
}

func (r *fakeReturnRepo) GetByOriginalSaleID(saleID string) (*entity.SaleReturn, error) {
	for _, ret := range r.returns {
		if ret.OriginalSaleID == saleID {
			return ret, nil
		}
	}
	return nil, nil
}

func (r *fakeReturnRepo) GetItemsByReturnID(returnID string) ([]*entity.SaleReturnItem, error) {
	var list []*entity.SaleReturnItem
	for _, item := range r.items {
		if item.SaleReturnID == returnID {
			list = append(list, item)
		}
	}
	return list, nil
}

func (r *fakeReturnRepo) List(limit, offset int) ([]*entity.SaleReturn, error) {
	var list []*entity.SaleReturn
	for _, ret := range r.returns {
		list = append(list, ret)
	}
	return list, nil
}

// fakeTxRunner implementa billing.TxRunner con rollback por snapshot.
type fakeTxRunner struct {
	products *fakeProductRepo
	sales    *fakeSaleRepo
	returns  *fakeReturnRepo
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	prodSnap := r.products.snapshot()
	headerSnap := make(map[string]*entity.Sale, len(r.sales.sales))
	for id, s := range r.sales.sales {
		headerSnap[id] = s
	}
	itemSnap := len(r.sales.items)
	if err := fn(r.products, r.sales); err != nil {
		r.products.restore(prodSnap)
		r.sales.sales = headerSnap
		r.sales.items = r.sales.items[:itemSnap]
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunReturn(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	returnRepo repository.SaleReturnRepository,
) error) error {
	prodSnap := r.products.snapshot()
	headerSnap := make(map[string]*entity.SaleReturn, len(r.returns.returns))
	for id, ret := range r.returns.returns {
		headerSnap[id] = ret
	}
	itemSnap := len(r.returns.items)
	if err := fn(r.products, r.returns); err != nil {
		r.products.restore(prodSnap)
		r.returns.returns = headerSnap
		r.returns.items = r.returns.items[:itemSnap]
		return err
	}
	return nil
}
