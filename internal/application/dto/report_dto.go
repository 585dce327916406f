package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockItemDTO una fila del reporte de stock bajo.
type LowStockItemDTO struct {
	DrugID          string `json:"drug_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	ReorderLevel    int64  `json:"reorder_level"`
	StockStatus     string `json:"stock_status"`
	SuggestedOrder  int64  `json:"suggested_order_qty"`
	UsageTrend      string `json:"usage_trend"`
	OutLast90Days   int64  `json:"out_last_90d"`
}

// LowStockReportResponse reporte de stock bajo.
type LowStockReportResponse struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Total       int               `json:"total"`
	Items       []LowStockItemDTO `json:"items"`
}

// ExpiryItemDTO una fila del reporte de vencimientos.
type ExpiryItemDTO struct {
	DrugID          string     `json:"drug_id"`
	SKU             string     `json:"sku"`
	Name            string     `json:"name"`
	Quantity        int64      `json:"quantity"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	ExpiryStatus    string     `json:"expiry_status"`
	DaysUntilExpiry int        `json:"days_until_expiry"`
}

// ExpiryReportResponse reporte de medicamentos vencidos y por vencer.
type ExpiryReportResponse struct {
	GeneratedAt  time.Time       `json:"generated_at"`
	Expired      []ExpiryItemDTO `json:"expired"`
	ExpiringSoon []ExpiryItemDTO `json:"expiring_soon"`
}

// DashboardResponse resumen para el tablero principal.
type DashboardResponse struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	TotalDrugs     int             `json:"total_drugs"`
	OutOfStock     int             `json:"out_of_stock"`
	LowStock       int             `json:"low_stock"`
	NearReorder    int             `json:"near_reorder"`
	Expired        int             `json:"expired"`
	ExpiringSoon   int             `json:"expiring_soon"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ quantity * cost
}
