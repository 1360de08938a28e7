package broker

import (
	"fmt"
	"strings"
	"time"

	"signal-trader/internal/errors"
	"signal-trader/internal/models"
)

// BuildOptionSymbol returns the OSI-style underscore symbol for an
// option contract, e.g. "INTC_123121C50" for the INTC 50 call expiring
// 12/31/21. The expiration accepts M/D, M/D/YY, and M/D/YYYY forms as
// produced by the signal grammar; a yearless expiration resolves to the
// current year. The strike keeps the decimal form it was quoted with.
func BuildOptionSymbol(ticker, expiration string, contractType models.ContractType, strike string) (string, error) {
	parts := strings.Split(expiration, "/")
	if len(parts) < 2 || len(parts) > 3 {
		return "", errors.NewValidationError("expiration", expiration, "must be M/D with optional year")
	}

	year := time.Now().Year() % 100
	if len(parts) == 3 {
		y := parts[2]
		if len(y) == 4 {
			y = y[2:]
		}
		if _, err := fmt.Sscanf(y, "%d", &year); err != nil {
			return "", errors.NewValidationError("expiration", expiration, "unparseable year")
		}
	}

	var month, day int
	if _, err := fmt.Sscanf(parts[0], "%d", &month); err != nil || month < 1 || month > 12 {
		return "", errors.NewValidationError("expiration", expiration, "unparseable month")
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &day); err != nil || day < 1 || day > 31 {
		return "", errors.NewValidationError("expiration", expiration, "unparseable day")
	}

	return fmt.Sprintf("%s_%02d%02d%02d%s%s", ticker, month, day, year, contractType, strike), nil
}
