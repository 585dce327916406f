package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
)

func TestSuggestedReorderQty(t *testing.T) {
	cases := []struct {
		name         string
		reorderLevel int64
		averageUsage float64
		want         int64
	}{
		// reorder*2 = 100 domina sobre lead(7) + safety(10) = 17
		{"doble del umbral domina", 50, 30, 100},
		// lead = ceil(600/30*7) = 140, safety = ceil(20*0.2) = 4; 144 > 40
		{"consumo alto domina", 20, 600, 144},
		// todo por debajo del mínimo: max(20, ...) < 50
		{"pedido mínimo aplica", 10, 10, 50},
		{"umbral cero y sin consumo cae al mínimo", 0, 0, 50},
		// lead = ceil(100/30*7) = ceil(23.33) = 24, safety = ceil(30*0.2) = 6; reorder*2 = 60
		{"techos se redondean hacia arriba", 30, 100, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.SuggestedReorderQty(tc.reorderLevel, tc.averageUsage))
		})
	}
}

func TestSuggestedReorderQty_NuncaBajoElMinimo(t *testing.T) {
	for reorder := int64(0); reorder <= 24; reorder++ {
		got := inventory.SuggestedReorderQty(reorder, 0)
		assert.GreaterOrEqual(t, got, int64(inventory.MinimumOrderQty),
			"reorderLevel=%d", reorder)
	}
}
