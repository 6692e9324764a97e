package production

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
)

// Stage is a column of the production pipeline
type Stage string

const (
	StageWaiting      Stage = "waiting"
	StageInProduction Stage = "in_production"
	StageFinishing    Stage = "finishing"
	StageReady        Stage = "ready"
	StageDelivered    Stage = "delivered"
)

// Pipeline lists the stages in their intended order
var Pipeline = []Stage{StageWaiting, StageInProduction, StageFinishing, StageReady, StageDelivered}

// IsValid checks if the stage is part of the pipeline
func (s Stage) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the stage's position in the pipeline, -1 if unknown
func (s Stage) Index() int {
	for i, st := range Pipeline {
		if st == s {
			return i
		}
	}
	return -1
}

// CanMoveTo is the single transition rule for production orders. The board
// guides users to adjacent columns, but any stage is accepted.
func (s Stage) CanMoveTo(target Stage) bool {
	return target.IsValid()
}

// OrderDetails are the editable fields of a production order
type OrderDetails struct {
	ClientID    *uuid.UUID
	QuoteID     *uuid.UUID
	Description string
	EntryDate   *time.Time
	ExpectedAt  *time.Time
}

// Order is a production order (pedido) moving through the pipeline
type Order struct {
	shared.TenantAggregateRoot
	Number      int64
	ClientID    *uuid.UUID
	QuoteID     *uuid.UUID
	Description string
	Status      Stage
	EntryDate   time.Time
	ExpectedAt  *time.Time
	DeliveredAt *time.Time

	// ClientName is filled by enriched reads only
	ClientName string
}

// NewOrder creates an order in the waiting column
func NewOrder(tenantID uuid.UUID, number int64, details OrderDetails) (*Order, error) {
	o := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
		Status:              StageWaiting,
		EntryDate:           time.Now(),
	}
	if err := o.apply(details); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces the editable fields
func (o *Order) Update(details OrderDetails) error {
	if err := o.apply(details); err != nil {
		return err
	}
	o.Touch()
	return nil
}

func (o *Order) apply(d OrderDetails) error {
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return shared.NewValidationError("Production order description cannot be empty")
	}
	o.ClientID = d.ClientID
	o.QuoteID = d.QuoteID
	o.Description = description
	if d.EntryDate != nil {
		o.EntryDate = *d.EntryDate
	}
	o.ExpectedAt = d.ExpectedAt
	return nil
}

// MoveTo overwrites the stage. Reaching delivered stamps the delivery date.
func (o *Order) MoveTo(target Stage, now time.Time) error {
	if !target.IsValid() {
		return shared.NewValidationError(fmt.Sprintf("Invalid production stage: %s", target))
	}
	if !o.Status.CanMoveTo(target) {
		return shared.NewInvalidStateError(fmt.Sprintf("Cannot move production order from %s to %s", o.Status, target))
	}
	from := o.Status
	o.Status = target
	if target == StageDelivered {
		o.DeliveredAt = &now
	}
	o.Touch()
	o.AddDomainEvent(NewOrderMovedEvent(o, from))
	return nil
}

// Column is one stage of the board with its cards
type Column struct {
	Stage  Stage   `json:"stage"`
	Orders []Order `json:"orders"`
}

// BuildBoard groups orders into pipeline columns, each ordered by entry date.
// Card order inside a column is presentation only and never stored.
func BuildBoard(orders []Order) []Column {
	board := make([]Column, len(Pipeline))
	for i, st := range Pipeline {
		board[i] = Column{Stage: st, Orders: []Order{}}
	}
	for _, o := range orders {
		if idx := o.Status.Index(); idx >= 0 {
			board[idx].Orders = append(board[idx].Orders, o)
		}
	}
	for i := range board {
		sort.SliceStable(board[i].Orders, func(a, b int) bool {
			return board[i].Orders[a].EntryDate.Before(board[i].Orders[b].EntryDate)
		})
	}
	return board
}
