package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopline-backend/pkg/db/models"
)

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name      string
		unitPrice string
		quantity  int
		want      string
	}{
		{"singleUnit", "19.99", 1, "19.99"},
		{"multipleUnits", "19.99", 3, "59.97"},
		{"zeroPrice", "0.00", 5, "0.00"},
		{"roundsToCents", "0.335", 2, "0.67"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LineTotal(decimal.RequireFromString(tc.unitPrice), tc.quantity)
			if err != nil {
				t.Fatalf("line total: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestLineTotalRejectsInvalidInput(t *testing.T) {
	if _, err := LineTotal(decimal.RequireFromString("1.00"), 0); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if _, err := LineTotal(decimal.RequireFromString("1.00"), -2); err == nil {
		t.Fatal("expected error for negative quantity")
	}
	if _, err := LineTotal(decimal.RequireFromString("-0.01"), 1); err == nil {
		t.Fatal("expected error for negative unit price")
	}
}

func TestCartTotalSumsSnapshots(t *testing.T) {
	lines := []models.CartLine{
		{TotalPrice: decimal.RequireFromString("59.97")},
		{TotalPrice: decimal.RequireFromString("10.00")},
		{TotalPrice: decimal.RequireFromString("0.03")},
	}

	got := CartTotal(lines)
	if !got.Equal(decimal.RequireFromString("70.00")) {
		t.Fatalf("expected 70.00, got %s", got)
	}
}

func TestCartTotalEmptyCartIsZero(t *testing.T) {
	if got := CartTotal(nil); !got.IsZero() {
		t.Fatalf("expected zero total for empty cart, got %s", got)
	}
}

func TestCartTotalIgnoresUnitPrices(t *testing.T) {
	// Stored totals win even when they disagree with unit_price * quantity;
	// the snapshot taken at insert time is the source of truth.
	lines := []models.CartLine{
		{UnitPrice: decimal.RequireFromString("99.99"), Quantity: 10, TotalPrice: decimal.RequireFromString("1.00")},
	}
	if got := CartTotal(lines); !got.Equal(decimal.RequireFromString("1.00")) {
		t.Fatalf("expected snapshot total 1.00, got %s", got)
	}
}
