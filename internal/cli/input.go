package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmturner/pocketwatch/internal/common"
)

// ParseAmount parses a user-entered money amount. A leading dollar sign
// and surrounding whitespace are tolerated; negative amounts are rejected
// because the sign belongs to the transaction kind.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", common.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q must not be negative", common.ErrInvalidAmount, s)
	}
	return d, nil
}
