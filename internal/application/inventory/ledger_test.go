package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/pos-retail/internal/application/inventory"
	"github.com/tu-usuario/pos-retail/internal/domain"
	"github.com/tu-usuario/pos-retail/internal/domain/entity"
)

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testProductID = "00000000-0000-0000-0000-0000000000aa"
)

func newLedgerFixture(stock int) (*inventory.LedgerUseCase, *fakeProductRepo, *fakeAdjustmentRepo) {
	products := newFakeProductRepo(&entity.Product{
		ID:            testProductID,
		Name:          "Café molido 500g",
		StockQuantity: stock,
		IsActive:      true,
	})
	adjustments := &fakeAdjustmentRepo{}
	runner := &fakeTxRunner{products: products, adjustments: adjustments}
	return inventory.NewLedgerUseCase(runner, adjustments), products, adjustments
}

func TestApplyDelta_RegistraSnapshotAntesYDespues(t *testing.T) {
	uc, products, adjustments := newLedgerFixture(10)

	resp, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID,
		UserID:    testUserID,
		Delta:     5,
		Reason:    entity.ReasonStockTake,
		Notes:     "conteo semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.StockLevelBefore)
	assert.Equal(t, 15, resp.StockLevelAfter)
	assert.Equal(t, 5, resp.QuantityChange)
	assert.Equal(t, entity.ReasonStockTake, resp.Reason)

	p, _ := products.GetByID(testProductID)
	assert.Equal(t, 15, p.StockQuantity, "el stock del producto debe reflejar el delta")

	require.Len(t, adjustments.adjustments, 1)
	adj := adjustments.adjustments[0]
	assert.Equal(t, adj.StockLevelBefore+adj.QuantityChange, adj.StockLevelAfter,
		"after debe ser before + delta")
	assert.Equal(t, testUserID, adj.UserID)
}

func TestApplyDelta_DeltaCeroRechazado(t *testing.T) {
	uc, _, adjustments := newLedgerFixture(10)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID,
		UserID:    testUserID,
		Delta:     0,
		Reason:    entity.ReasonStockTake,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, adjustments.adjustments, "un delta 0 no deja registro")
}

func TestApplyDelta_RazonDesconocidaRechazada(t *testing.T) {
	uc, _, _ := newLedgerFixture(10)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID,
		UserID:    testUserID,
		Delta:     1,
		Reason:    "Inventory Magic",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyDelta_ProductoInexistente(t *testing.T) {
	uc, _, adjustments := newLedgerFixture(10)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: "no-existe",
		UserID:    testUserID,
		Delta:     1,
		Reason:    entity.ReasonStockTake,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, adjustments.adjustments)
}

// El nivel resultante negativo solo se permite con razones de corrección de
// realidad (Initial Stock, Correction, Damage, Theft).
func TestApplyDelta_NegativoBloqueadoPorRazon(t *testing.T) {
	uc, products, adjustments := newLedgerFixture(3)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID,
		UserID:    testUserID,
		Delta:     -5,
		Reason:    entity.ReasonStockTake,
	})
	require.Error(t, err)

	var negErr *domain.NegativeStockError
	require.True(t, errors.As(err, &negErr))
	assert.Equal(t, -2, negErr.Resulting)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	p, _ := products.GetByID(testProductID)
	assert.Equal(t, 3, p.StockQuantity, "el stock no debe cambiar si el ajuste fue rechazado")
	assert.Empty(t, adjustments.adjustments)
}

func TestApplyDelta_NegativoPermitidoConCorrection(t *testing.T) {
	uc, products, adjustments := newLedgerFixture(3)

	resp, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID,
		UserID:    testUserID,
		Delta:     -5,
		Reason:    entity.ReasonCorrection,
	})
	require.NoError(t, err)
	assert.Equal(t, -2, resp.StockLevelAfter)

	p, _ := products.GetByID(testProductID)
	assert.Equal(t, -2, p.StockQuantity)
	require.Len(t, adjustments.adjustments, 1)
}

func TestApplyDelta_VentaNoEsRazonDeAjuste(t *testing.T) {
	// Las ventas y devoluciones mutan stock por su propio camino transaccional;
	// el catálogo de razones del ledger no las incluye.
	assert.False(t, entity.IsValidAdjustmentReason("Sale"))
	assert.False(t, entity.IsValidAdjustmentReason("Return"))
}

func TestListAdjustments_FiltraPorProducto(t *testing.T) {
	uc, _, _ := newLedgerFixture(10)

	_, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ProductID: testProductID, UserID: testUserID, Delta: 2, Reason: entity.ReasonStockTake,
	})
	require.NoError(t, err)

	list, err := uc.ListAdjustments(context.Background(), testProductID, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	empty, err := uc.ListAdjustments(context.Background(), "otro-producto", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
