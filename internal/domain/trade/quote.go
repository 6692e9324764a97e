package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusApproved, QuoteStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuoteStatus
func (s QuoteStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s QuoteStatus) IsTerminal() bool {
	return s == QuoteStatusApproved || s == QuoteStatusRejected
}

// IsEditable reports whether lines and terms can still change
func (s QuoteStatus) IsEditable() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// CanTransitionTo is the single transition table for quotes.
// A draft may skip sent and be answered directly.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return target == QuoteStatusSent || target == QuoteStatusApproved || target == QuoteStatusRejected
	case QuoteStatusSent:
		return target == QuoteStatusApproved || target == QuoteStatusRejected
	}
	return false
}

// QuoteLine is one priced line of a quote. LineTotal = Quantity × UnitPrice.
type QuoteLine struct {
	ID          uuid.UUID
	QuoteID     uuid.UUID
	Position    int
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// QuoteLineInput carries the caller-supplied fields of a line
type QuoteLineInput struct {
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
}

func newQuoteLine(quoteID uuid.UUID, position int, in QuoteLineInput) (QuoteLine, error) {
	if strings.TrimSpace(in.Description) == "" {
		return QuoteLine{}, shared.NewValidationError(fmt.Sprintf("Line %d: description cannot be empty", position+1))
	}
	if !in.Quantity.IsPositive() {
		return QuoteLine{}, shared.NewValidationError(fmt.Sprintf("Line %d: quantity must be positive", position+1))
	}
	if in.UnitPrice.IsNegative() {
		return QuoteLine{}, shared.NewValidationError(fmt.Sprintf("Line %d: unit price cannot be negative", position+1))
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "un"
	}
	return QuoteLine{
		ID:          uuid.New(),
		QuoteID:     quoteID,
		Position:    position,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		Unit:        unit,
		UnitPrice:   in.UnitPrice,
		LineTotal:   in.Quantity.Mul(in.UnitPrice),
	}, nil
}

// QuoteDetails are the editable fields of a quote
type QuoteDetails struct {
	ClientID      *uuid.UUID
	ManualNumber  string
	Lines         []QuoteLineInput
	Discount      decimal.Decimal
	DeliveryTerms string
	DeliveryDate  *time.Time
	ValidUntil    *time.Time
	PaymentTerms  string
	Responsible   string
	Notes         string
}

// Quote is a priced proposal (orçamento). It carries two independent
// numbers: Number is assigned per tenant in sequence, ManualNumber is free
// text typed by the user. Neither takes precedence over the other.
type Quote struct {
	shared.TenantAggregateRoot
	Number        int64
	ManualNumber  string
	ClientID      *uuid.UUID
	Status        QuoteStatus
	Lines         []QuoteLine
	Total         decimal.Decimal
	Discount      decimal.Decimal
	Final         decimal.Decimal
	DeliveryTerms string
	DeliveryDate  *time.Time
	ValidUntil    *time.Time
	PaymentTerms  string
	Responsible   string
	Notes         string
	ApprovedAt    *time.Time

	// ClientName is filled by enriched reads only
	ClientName string
}

// NewQuote creates a draft quote
func NewQuote(tenantID uuid.UUID, number int64, details QuoteDetails) (*Quote, error) {
	q := &Quote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Status:              QuoteStatusDraft,
	}
	if err := q.apply(details); err != nil {
		return nil, err
	}
	return q, nil
}

// Update replaces every editable field. Lines are replaced wholesale, so
// callers must resend the full set.
func (q *Quote) Update(details QuoteDetails) error {
	if !q.Status.IsEditable() {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot edit a quote in %s status", q.Status))
	}
	if err := q.apply(details); err != nil {
		return err
	}
	q.Touch()
	return nil
}

func (q *Quote) apply(d QuoteDetails) error {
	if len(d.Lines) == 0 {
		return shared.NewValidationError("Quote must have at least one line")
	}
	if d.Discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	lines := make([]QuoteLine, 0, len(d.Lines))
	for i, in := range d.Lines {
		line, err := newQuoteLine(q.ID, i, in)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	q.ClientID = d.ClientID
	q.ManualNumber = strings.TrimSpace(d.ManualNumber)
	q.Lines = lines
	q.Discount = d.Discount
	q.DeliveryTerms = d.DeliveryTerms
	q.DeliveryDate = d.DeliveryDate
	q.ValidUntil = d.ValidUntil
	q.PaymentTerms = d.PaymentTerms
	q.Responsible = d.Responsible
	q.Notes = d.Notes
	return q.recalculateTotals()
}

// recalculateTotals sets Total = Σ line totals and Final = Total − Discount.
// Line totals keep full precision; only Total and Discount are rounded to
// cents, so Final is exact against the stored amounts.
func (q *Quote) recalculateTotals() error {
	total := decimal.Zero
	for _, l := range q.Lines {
		total = total.Add(l.LineTotal)
	}
	total = total.Round(2)
	q.Discount = q.Discount.Round(2)
	if q.Discount.GreaterThan(total) {
		return shared.NewValidationError("Discount cannot exceed the quote total")
	}
	q.Total = total
	q.Final = total.Sub(q.Discount)
	return nil
}

// TransitionTo moves the quote through the status table
func (q *Quote) TransitionTo(target QuoteStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid quote status: %s", target))
	}
	if !q.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot change quote from %s to %s", q.Status, target))
	}
	from := q.Status
	q.Status = target
	if target == QuoteStatusApproved {
		now := time.Now()
		q.ApprovedAt = &now
	}
	q.Touch()
	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, from))
	return nil
}

// CanDelete reports whether the quote may be removed
func (q *Quote) CanDelete() bool {
	return q.Status == QuoteStatusDraft || q.Status == QuoteStatusRejected
}

// ServiceOrderTitle is the title given to the service order created on approval
func (q *Quote) ServiceOrderTitle() string {
	if q.ManualNumber != "" {
		return fmt.Sprintf("Orçamento #%d (%s)", q.Number, q.ManualNumber)
	}
	return fmt.Sprintf("Orçamento #%d", q.Number)
}
