package sales_test

import (
	"context"
	"fmt"
	"sync"
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
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	drugs     map[string]*entity.Drug
	patients  map[string]*entity.Patient
	movements []*entity.StockMovement
	sales     map[string]*entity.Sale
	saleItems map[string][]*entity.SaleItem
	purchases map[string]*entity.Purchase
	nextSale  int
	nextPurch int
}

func newStore() *store {
	return &store{
		drugs:     make(map[string]*entity.Drug),
		patients:  make(map[string]*entity.Patient),
		sales:     make(map[string]*entity.Sale),
		saleItems: make(map[string][]*entity.SaleItem),
		purchases: make(map[string]*entity.Purchase),
	}
}

type fakeDrugRepo struct{ s *store }

func (r *fakeDrugRepo) Create(d *entity.Drug) error { r.s.drugs[d.ID] = d; return nil }
func (r *fakeDrugRepo) GetByID(id string) (*entity.Drug, error) {
	d, ok := r.s.drugs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (r *fakeDrugRepo) GetBySKU(sku string) (*entity.Drug, error) { return nil, nil }
func (r *fakeDrugRepo) GetForUpdate(id string) (*entity.Drug, error) {
	return r.GetByID(id)
}
func (r *fakeDrugRepo) Update(d *entity.Drug) error { return nil }
func (r *fakeDrugRepo) UpdateQuantity(id string, quantity int64) error {
	d, ok := r.s.drugs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Quantity = quantity
	return nil
}
func (r *fakeDrugRepo) List(limit, offset int) ([]*entity.Drug, error) { return nil, nil }
func (r *fakeDrugRepo) ListActive() ([]*entity.Drug, error)            { return nil, nil }
func (r *fakeDrugRepo) Deactivate(id string) error                     { return nil }

type fakeMovementRepo struct{ s *store }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }
func (r *fakeMovementRepo) ListByDrugSince(drugID string, from time.Time) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakePatientRepo struct{ s *store }

func (r *fakePatientRepo) Create(p *entity.Patient) error { r.s.patients[p.ID] = p; return nil }
func (r *fakePatientRepo) GetByID(id string) (*entity.Patient, error) {
	p, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *fakePatientRepo) GetByDocument(document string) (*entity.Patient, error) { return nil, nil }
func (r *fakePatientRepo) Update(p *entity.Patient) error                         { return nil }
func (r *fakePatientRepo) List(limit, offset int) ([]*entity.Patient, error)      { return nil, nil }

type fakeSaleRepo struct{ s *store }

func (r *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	r.s.sales[sale.ID] = sale
	r.s.saleItems[sale.ID] = items
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil, nil
	}
	return sale, r.s.saleItems[id], nil
}
func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }
func (r *fakeSaleRepo) NextNumber() (string, error) {
	r.s.nextSale++
	return fmt.Sprintf("V-%06d", r.s.nextSale), nil
}

type fakePurchaseRepo struct{ s *store }

func (r *fakePurchaseRepo) Create(p *entity.Purchase, items []*entity.PurchaseItem) error {
	r.s.purchases[p.ID] = p
	return nil
}
func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil, nil
	}
	return p, nil, nil
}
func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) { return nil, nil }
func (r *fakePurchaseRepo) NextNumber() (string, error) {
	r.s.nextPurch++
	return fmt.Sprintf("C-%06d", r.s.nextPurch), nil
}

// fakeTxRunner serializa con mutex y descarta cambios si fn falla.
type fakeTxRunner struct {
	mu sync.Mutex
	s  *store
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	drugRepo repository.DrugRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshot()
	if err := fn(&fakeMovementRepo{s: r.s}, &fakeDrugRepo{s: r.s}, &fakeSaleRepo{s: r.s}); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	drugRepo repository.DrugRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshot()
	if err := fn(&fakeMovementRepo{s: r.s}, &fakeDrugRepo{s: r.s}, &fakePurchaseRepo{s: r.s}); err != nil {
		r.restore(snap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) snapshot() *store {
	cp := newStore()
	for id, d := range r.s.drugs {
		dc := *d
		cp.drugs[id] = &dc
	}
	for id, p := range r.s.patients {
		cp.patients[id] = p
	}
	cp.movements = append([]*entity.StockMovement{}, r.s.movements...)
	for id, s := range r.s.sales {
		cp.sales[id] = s
	}
	for id, items := range r.s.saleItems {
		cp.saleItems[id] = items
	}
	for id, p := range r.s.purchases {
		cp.purchases[id] = p
	}
	cp.nextSale = r.s.nextSale
	cp.nextPurch = r.s.nextPurch
	return cp
}

func (r *fakeTxRunner) restore(snap *store) { *r.s = *snap }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedDrug(s *store, id string, name string, quantity int64, price int64) {
	s.drugs[id] = &entity.Drug{
		ID:       id,
		SKU:      "SKU-" + id,
		Name:     name,
		Unit:     "tableta",
		Price:    decimal.NewFromInt(price),
		Cost:     decimal.NewFromInt(price / 2),
		Quantity: quantity,
		Active:   true,
	}
}

func newSaleUC(s *store) *appsales.CreateSaleUseCase {
	runner := &fakeTxRunner{s: s}
	drugRepo := &fakeDrugRepo{s: s}
	// TxRunner de inventario no se usa aquí: las ventas entran por RunSale
	invUC := appinv.NewApplyMovementUseCase(nil, drugRepo)
	return appsales.NewCreateSaleUseCase(runner, invUC, drugRepo, &fakePatientRepo{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYGuardaVenta(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	seedDrug(s, "d2", "Ibuprofeno 400mg", 50, 1500)

	out, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{DrugID: "d1", Quantity: 2},
			{DrugID: "d2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "V-000001", out.Number)
	// Sin precio explícito se usa el precio de lista
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(3900)), "subtotal = 2*1200 + 1500")
	assert.True(t, out.Total.Equal(decimal.NewFromInt(3900)))

	assert.Equal(t, int64(98), s.drugs["d1"].Quantity)
	assert.Equal(t, int64(49), s.drugs["d2"].Quantity)

	// Una salida en el libro por cada línea, referenciando la venta
	require.Len(t, s.movements, 2)
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementTypeOut, m.Type)
		assert.Equal(t, out.ID, m.Reference)
		assert.Contains(t, m.Reason, "venta V-000001")
	}

	// El snapshot del nombre queda en la línea
	items := s.saleItems[out.ID]
	require.Len(t, items, 2)
	assert.Equal(t, "Paracetamol 500mg", items[0].DrugName)
}

// Si una línea no tiene stock, la venta completa se revierte: sin venta, sin
// movimientos y sin cambios de saldo en las líneas que sí alcanzaban.
func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	seedDrug(s, "d2", "Amoxicilina 500mg", 3, 2000)

	_, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{DrugID: "d1", Quantity: 10}, // alcanzaba
			{DrugID: "d2", Quantity: 5},  // no alcanza
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(100), s.drugs["d1"].Quantity, "la línea que alcanzaba también se revierte")
	assert.Equal(t, int64(3), s.drugs["d2"].Quantity)
	assert.Empty(t, s.movements)
	assert.Empty(t, s.sales)
}

func TestCreateSale_DescuentoYPrecioExplicito(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)

	out, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		Discount: decimal.NewFromInt(500),
		Items: []dto.SaleItemRequest{
			{DrugID: "d1", Quantity: 2, UnitPrice: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(1500)))
}

func TestCreateSale_DescuentoMayorAlTotal(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)

	_, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		Discount: decimal.NewFromInt(5000),
		Items:    []dto.SaleItemRequest{{DrugID: "d1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(100), s.drugs["d1"].Quantity)
}

func TestCreateSale_PacienteInexistente(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)

	_, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		PatientID: "nope",
		Items:     []dto.SaleItemRequest{{DrugID: "d1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_MedicamentoInactivo(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 100, 1200)
	s.drugs["d1"].Active = false

	_, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{DrugID: "d1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_SinLineas(t *testing.T) {
	s := newStore()
	_, err := newSaleUC(s).CreateSale(context.Background(), "u1", dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_IngresaStock(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", "Paracetamol 500mg", 10, 1200)

	runner := &fakeTxRunner{s: s}
	drugRepo := &fakeDrugRepo{s: s}
	invUC := appinv.NewApplyMovementUseCase(nil, drugRepo)
	uc := appsales.NewCreatePurchaseUseCase(runner, invUC, drugRepo, &fakePurchaseRepo{s: s})

	out, err := uc.CreatePurchase(context.Background(), "u1", dto.CreatePurchaseRequest{
		Supplier:  "Droguería Central",
		Reference: "FAC-8841",
		Items: []dto.PurchaseItemRequest{
			{DrugID: "d1", Quantity: 200, UnitCost: decimal.NewFromInt(800)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "C-000001", out.Number)
	assert.Equal(t, int64(210), s.drugs["d1"].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(160000)))

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeIn, s.movements[0].Type)
	assert.Equal(t, int64(210), s.movements[0].BalanceAfter)
}
