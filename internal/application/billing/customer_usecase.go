package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-retail/internal/application/dto"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
	"github.com/tu-usuario/pos-retail/internal/domain/repository"
)

// CustomerUseCase gestiona el catálogo de clientes del punto de venta.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// CreateCustomer registra un cliente. El teléfono, si se indica, debe ser
// único; dos clientes distintos no pueden compartirlo.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &domain.ValidationError{Msg: "el nombre del cliente es requerido"}
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		existing, err := uc.customerRepo.GetByPhone(phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer obtiene un cliente por ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lista clientes con paginación.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}
