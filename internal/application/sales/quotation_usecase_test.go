package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	appinv "github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	appsales "github.com/tu-usuario/farmacia-pos/internal/application/sales"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

type fakeQuotationRepo struct {
	quotations map[string]*entity.Quotation
	items      map[string][]*entity.QuotationItem
	next       int
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{
		quotations: make(map[string]*entity.Quotation),
		items:      make(map[string][]*entity.QuotationItem),
	}
}

func (r *fakeQuotationRepo) Create(q *entity.Quotation, items []*entity.QuotationItem) error {
	r.quotations[q.ID] = q
	r.items[q.ID] = items
	return nil
}

func (r *fakeQuotationRepo) GetByID(id string) (*entity.Quotation, []*entity.QuotationItem, error) {
	q, ok := r.quotations[id]
	if !ok {
		return nil, nil, nil
	}
	cp := *q
	return &cp, r.items[id], nil
}

func (r *fakeQuotationRepo) UpdateStatus(id, status, saleID string) error {
	q, ok := r.quotations[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.Status = status
	q.SaleID = saleID
	return nil
}

func (r *fakeQuotationRepo) List(limit, offset int) ([]*entity.Quotation, error) { return nil, nil }

func (r *fakeQuotationRepo) NextNumber() (string, error) {
	r.next++
	return fmt.Sprintf("Q-%06d", r.next), nil
}

func newQuotationUC(s *store, qRepo *fakeQuotationRepo) *appsales.QuotationUseCase {
	runner := &fakeTxRunner{s: s}
	drugRepo := &fakeDrugRepo{s: s}
	invUC := appinv.NewApplyMovementUseCase(nil, drugRepo)
	saleUC := appsales.NewCreateSaleUseCase(runner, invUC, drugRepo, &fakePatientRepo{s: s})
	return appsales.NewQuotationUseCase(qRepo, drugRepo, saleUC)
}

func TestQuotation_CrearNoTocaStock(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	qRepo := newFakeQuotationRepo()

	out, err := newQuotationUC(s, qRepo).Create(context.Background(), "u1", dto.CreateQuotationRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Q-000001", out.Number)
	assert.Equal(t, entity.QuotationStatusOpen, out.Status)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(4800)))
	assert.Equal(t, int64(100), s.drugs["d1"].Quantity, "cotizar no descuenta stock")
	assert.Empty(t, s.movements)
}

// Convertir descuenta stock al precio cotizado, aunque el precio de lista
// haya cambiado después de cotizar.
func TestQuotation_ConvertirRespetaPrecioCotizado(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	qRepo := newFakeQuotationRepo()
	uc := newQuotationUC(s, qRepo)

	q, err := uc.Create(context.Background(), "u1", dto.CreateQuotationRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 4}},
	})
	require.NoError(t, err)

	// Sube el precio de lista después de la cotización
	s.drugs["d1"].Price = decimal.NewFromInt(2000)

	sale, err := uc.Convert(context.Background(), "u1", q.ID)
	require.NoError(t, err)

	assert.True(t, sale.Total.Equal(decimal.NewFromInt(4800)), "se vende al precio cotizado")
	assert.Equal(t, int64(96), s.drugs["d1"].Quantity)

	converted, _, err := qRepo.GetByID(q.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusConverted, converted.Status)
	assert.Equal(t, sale.ID, converted.SaleID)
}

func TestQuotation_ConvertirDosVecesEsConflicto(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	qRepo := newFakeQuotationRepo()
	uc := newQuotationUC(s, qRepo)

	q, err := uc.Create(context.Background(), "u1", dto.CreateQuotationRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), "u1", q.ID)
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), "u1", q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(98), s.drugs["d1"].Quantity, "la segunda conversión no descuenta nada")
}

func TestQuotation_ConvertirVencidaEsConflicto(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	qRepo := newFakeQuotationRepo()
	uc := newQuotationUC(s, qRepo)

	q, err := uc.Create(context.Background(), "u1", dto.CreateQuotationRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 2}},
	})
	require.NoError(t, err)
	qRepo.quotations[q.ID].ValidTo = time.Now().Add(-time.Hour)

	_, err = uc.Convert(context.Background(), "u1", q.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.QuotationStatusExpired, qRepo.quotations[q.ID].Status)
	assert.Equal(t, int64(100), s.drugs["d1"].Quantity)
}

func TestQuotation_ConvertirSinStockDejaCotizacionAbierta(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 1, 1200)
	qRepo := newFakeQuotationRepo()
	uc := newQuotationUC(s, qRepo)

	q, err := uc.Create(context.Background(), "u1", dto.CreateQuotationRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), "u1", q.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	open, _, _ := qRepo.GetByID(q.ID)
	assert.Equal(t, entity.QuotationStatusOpen, open.Status, "sin venta, la cotización sigue abierta")
	assert.Equal(t, int64(1), s.drugs["d1"].Quantity)
}
