package sales

import (
	"context"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// TxRunner ejecuta los casos de uso de venta/compra dentro de una transacción,
// con repositorios atados a esa tx. Las líneas del documento y sus movimientos
// de stock comparten atomicidad: si una línea no tiene stock, nada se persiste.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
		saleRepo repository.SaleRepository,
	) error) error

	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// ReceiptGenerator genera la representación imprimible (PDF) de un recibo de venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, items []*entity.SaleItem, patient *entity.Patient) ([]byte, error)
}
