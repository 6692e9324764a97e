package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryDetails are the editable fields shared by receivables and payables
type EntryDetails struct {
	CounterpartID *uuid.UUID
	CategoryID    *uuid.UUID
	Description   string
	Amount        decimal.Decimal
	DueDate       time.Time
	PaymentMethod string
}

func (d EntryDetails) validate() error {
	return d.check(false)
}

// check validates the fields. Only entries generated from an approved quote
// may carry a zero amount, since a fully discounted quote still owes one.
func (d EntryDetails) check(allowZero bool) error {
	if strings.TrimSpace(d.Description) == "" {
		return shared.NewValidationError("Description cannot be empty")
	}
	if d.Amount.IsNegative() || (!allowZero && d.Amount.IsZero()) {
		return shared.NewValidationError("Amount must be positive")
	}
	if d.DueDate.IsZero() {
		return shared.NewValidationError("Due date is required")
	}
	return nil
}

// dateOnly truncates t to midnight in its own location
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
