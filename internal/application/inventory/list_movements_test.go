package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	appinv "github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// seedMovement inserta un movimiento directo en el store (al frente: más reciente primero).
func seedMovement(s *store, drugID, typ string, qty int64, reason, createdBy string, createdAt time.Time) {
	s.movements = append([]*entity.StockMovement{{
		ID:        reason + createdAt.String(),
		DrugID:    drugID,
		Type:      typ,
		Quantity:  qty,
		Reason:    reason,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
	}}, s.movements...)
}

func newListUC(s *store) *appinv.ListMovementsUseCase {
	return appinv.NewListMovementsUseCase(&fakeDrugRepo{s: s}, &fakeMovementRepo{s: s})
}

func TestListMovements_OrdenYTotales(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedMovement(s, "d1", entity.MovementTypeIn, 100, "compra inicial", "u1", now.AddDate(0, 0, -5))
	seedMovement(s, "d1", entity.MovementTypeOut, 20, "venta V-000001", "u2", now.AddDate(0, 0, -3))
	seedMovement(s, "d1", entity.MovementTypeOut, 10, "venta V-000002", "u2", now.AddDate(0, 0, -1))

	out, err := newListUC(s).ListMovements(context.Background(), "d1", dto.ListMovementsRequest{}, now)
	require.NoError(t, err)

	require.Len(t, out.Items, 3)
	// Más reciente primero
	assert.Equal(t, "venta V-000002", out.Items[0].Reason)
	assert.Equal(t, "compra inicial", out.Items[2].Reason)
	assert.Equal(t, int64(100), out.TotalIn)
	assert.Equal(t, int64(30), out.TotalOut)
}

func TestListMovements_FiltroPorTipo(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Now()
	seedMovement(s, "d1", entity.MovementTypeIn, 100, "compra", "u1", now.Add(-3*time.Hour))
	seedMovement(s, "d1", entity.MovementTypeOut, 20, "venta", "u1", now.Add(-2*time.Hour))
	seedMovement(s, "d1", entity.MovementTypeAdjustment, 75, "conteo", "u1", now.Add(-time.Hour))

	out, err := newListUC(s).ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{Type: entity.MovementTypeOut}, now)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "venta", out.Items[0].Reason)
	// Los totales se calculan sobre el conjunto filtrado, no sobre todo el historial
	assert.Equal(t, int64(0), out.TotalIn)
	assert.Equal(t, int64(20), out.TotalOut)
}

func TestListMovements_FiltroTipoInvalido(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)

	_, err := newListUC(s).ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{Type: "transfer"}, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_RangoDeFechas(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	seedMovement(s, "d1", entity.MovementTypeOut, 5, "vieja", "u1", now.AddDate(0, 0, -40))
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "semana pasada", "u1", now.AddDate(0, 0, -6))
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "ayer", "u1", now.AddDate(0, 0, -1))

	uc := newListUC(s)

	out7, err := uc.ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{DateRange: dto.DateRange7Days}, now)
	require.NoError(t, err)
	assert.Len(t, out7.Items, 2)

	out30, err := uc.ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{DateRange: dto.DateRange30Days}, now)
	require.NoError(t, err)
	assert.Len(t, out30.Items, 2)

	outAll, err := uc.ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{DateRange: dto.DateRangeAll}, now)
	require.NoError(t, err)
	assert.Len(t, outAll.Items, 3)

	_, err = uc.ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{DateRange: "2weeks"}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Búsqueda sin distinguir mayúsculas ni tildes: "perdida" encuentra "Pérdida".
func TestListMovements_BusquedaInsensibleATildes(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Now()
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "Pérdida por vencimiento", "u1", now.Add(-2*time.Hour))
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "venta mostrador", "u1", now.Add(-time.Hour))

	out, err := newListUC(s).ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{SearchText: "perdida"}, now)
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "Pérdida por vencimiento", out.Items[0].Reason)
}

func TestListMovements_BusquedaPorUsuario(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Now()
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "venta", "maria", now.Add(-2*time.Hour))
	seedMovement(s, "d1", entity.MovementTypeOut, 5, "venta", "jose", now.Add(-time.Hour))

	out, err := newListUC(s).ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{SearchText: "MARIA"}, now)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "maria", out.Items[0].CreatedBy)
}

// Los filtros se componen con AND y la paginación corta después de filtrar;
// los totales cubren el conjunto filtrado completo, no solo la página.
func TestListMovements_PaginacionSobreFiltrado(t *testing.T) {
	s := newStore()
	seedDrug(s, "d1", 100, 10)
	now := time.Now()
	for i := 0; i < 5; i++ {
		seedMovement(s, "d1", entity.MovementTypeOut, 10, "venta", "u1", now.Add(-time.Duration(i)*time.Hour))
	}
	seedMovement(s, "d1", entity.MovementTypeIn, 100, "compra", "u1", now.Add(-10*time.Hour))

	out, err := newListUC(s).ListMovements(context.Background(), "d1",
		dto.ListMovementsRequest{
			Type:        entity.MovementTypeOut,
			PageRequest: dto.PageRequest{Limit: 2, Offset: 0},
		}, now)
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Equal(t, 5, out.Page.Total)
	assert.Equal(t, int64(50), out.TotalOut, "los totales cubren las 5 salidas, no la página de 2")
}

func TestListMovements_MedicamentoInexistente(t *testing.T) {
	s := newStore()
	_, err := newListUC(s).ListMovements(context.Background(), "nope", dto.ListMovementsRequest{}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
