package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopline-backend/pkg/db/models"
)

// Money values are stored as numeric(12,2); every derived amount is rounded to
// the same scale before persisting.
const moneyScale = 2

// LineTotal computes unit price times quantity for a cart line.
func LineTotal(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, fmt.Errorf("unit price must not be negative, got %s", unitPrice)
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(moneyScale), nil
}

// CartTotal sums the snapshotted line totals. The stored totals are authoritative;
// unit prices are never re-multiplied here.
func CartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].TotalPrice)
	}
	return total.Round(moneyScale)
}
