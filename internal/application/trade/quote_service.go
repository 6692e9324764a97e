package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/grafica/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// QuoteService handles quote business operations, including the approval
// cascade into a service order and a receivable
type QuoteService struct {
	quoteRepo        trade.QuoteRepository
	serviceOrderRepo trade.ServiceOrderRepository
	receivableRepo   finance.ReceivableRepository
	clientRepo       partner.PartyRepository
	txManager        shared.TransactionManager
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
	now              func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo trade.QuoteRepository,
	serviceOrderRepo trade.ServiceOrderRepository,
	receivableRepo finance.ReceivableRepository,
	clientRepo partner.PartyRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *QuoteService {
	return &QuoteService{
		quoteRepo:        quoteRepo,
		serviceOrderRepo: serviceOrderRepo,
		receivableRepo:   receivableRepo,
		clientRepo:       clientRepo,
		txManager:        txManager,
		logger:           logger,
		now:              time.Now,
	}
}

// SetEventPublisher sets the event publisher for status change notifications
func (s *QuoteService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft quote with the next sequence number
func (s *QuoteService) Create(ctx context.Context, scope shared.TenantScope, req CreateQuoteRequest) (*QuoteResponse, error) {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.ClientID); err != nil {
		return nil, err
	}

	var quote *trade.Quote
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.quoteRepo.NextNumber(txCtx, scope.TenantID())
		if err != nil {
			return err
		}
		quote, err = trade.NewQuote(scope.TenantID(), number, req.toDetails())
		if err != nil {
			return err
		}
		return s.quoteRepo.Save(txCtx, quote)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quote created",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("quote_id", quote.ID.String()),
		zap.Int64("number", quote.Number),
	)
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// Get retrieves a quote with its lines
func (s *QuoteService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*QuoteResponse, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// List retrieves quotes with filtering and pagination
func (s *QuoteService) List(ctx context.Context, scope shared.TenantScope, filter QuoteListFilter) (*shared.Paginated[QuoteResponse], error) {
	domainFilter := trade.QuoteFilter{
		Filter:   shared.DefaultFilter(),
		Status:   trade.QuoteStatus(filter.Status),
		ClientID: filter.ClientID,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	domainFilter.From = filter.From
	domainFilter.To = filter.To

	quotes, total, err := s.quoteRepo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToQuoteResponses(quotes), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update replaces a draft or sent quote's fields and lines
func (s *QuoteService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.ClientID); err != nil {
		return nil, err
	}
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil {
		if err := quote.CheckVersion(*req.Version); err != nil {
			return nil, err
		}
	}
	if err := quote.Update(req.toDetails()); err != nil {
		return nil, err
	}
	quote.IncrementVersion()

	if err := s.save(ctx, quote, req.Version != nil); err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// SetStatus applies a status change. Approval is routed to Approve so the
// cascade always runs.
func (s *QuoteService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SetQuoteStatusRequest) (*QuoteResponse, error) {
	target := trade.QuoteStatus(req.Status)
	if target == trade.QuoteStatusApproved {
		result, err := s.Approve(ctx, scope, id, ApproveQuoteRequest{Version: req.Version})
		if err != nil {
			return nil, err
		}
		return &result.Quote, nil
	}

	quote, err := s.quoteRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if req.Version != nil {
		if err := quote.CheckVersion(*req.Version); err != nil {
			return nil, err
		}
	}
	if err := quote.TransitionTo(target); err != nil {
		return nil, err
	}
	quote.IncrementVersion()

	if err := s.save(ctx, quote, req.Version != nil); err != nil {
		return nil, err
	}
	s.publish(ctx, quote.PullDomainEvents()...)

	resp := ToQuoteResponse(quote)
	return &resp, nil
}

// Approve marks the quote approved and creates its service order and
// receivable in one transaction. Any failure rolls back all three writes.
// Approval is refused when an order or receivable already references the
// quote, so a retried request never duplicates them.
func (s *QuoteService) Approve(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req ApproveQuoteRequest) (*ApprovalResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "quote", "approve",
		"tenant.id", scope.TenantID().String(),
		"quote.id", id.String(),
	)
	defer span.End()

	var (
		quote      *trade.Quote
		order      *trade.ServiceOrder
		receivable *finance.Receivable
	)
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		quote, err = s.quoteRepo.FindByIDForTenant(txCtx, scope.TenantID(), id)
		if err != nil {
			return err
		}
		if req.Version != nil {
			if err := quote.CheckVersion(*req.Version); err != nil {
				return err
			}
		}
		if err := quote.TransitionTo(trade.QuoteStatusApproved); err != nil {
			return err
		}
		if err := s.ensureNotCascaded(txCtx, scope.TenantID(), quote.ID); err != nil {
			return err
		}

		number, err := s.serviceOrderRepo.NextNumber(txCtx, scope.TenantID())
		if err != nil {
			return err
		}
		order, err = trade.NewServiceOrderFromQuote(quote, number)
		if err != nil {
			return err
		}
		receivable, err = finance.NewReceivableFromQuote(quote, s.now())
		if err != nil {
			return err
		}

		quote.IncrementVersion()
		if err := s.save(txCtx, quote, req.Version != nil); err != nil {
			return err
		}
		if err := s.serviceOrderRepo.Create(txCtx, order); err != nil {
			return err
		}
		return s.receivableRepo.Save(txCtx, receivable)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Quote approval rolled back",
			zap.String("tenant_id", scope.TenantID().String()),
			zap.String("quote_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.publish(ctx, quote.PullDomainEvents()...)

	s.logger.Info("Quote approved",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("quote_id", quote.ID.String()),
		zap.String("service_order_id", order.ID.String()),
		zap.String("receivable_id", receivable.ID.String()),
	)

	result := &ApprovalResponse{
		Quote:        ToQuoteResponse(quote),
		ServiceOrder: ToServiceOrderResponse(order, s.now()),
		Receivable: &ReceivableSummary{
			ID:          receivable.ID,
			Description: receivable.Description,
			Amount:      receivable.Amount,
			DueDate:     receivable.DueDate,
			Status:      string(receivable.Status),
		},
	}
	return result, nil
}

// Delete removes a draft or rejected quote
func (s *QuoteService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return err
	}
	if !quote.CanDelete() {
		return shared.NewInvalidStateError("Only draft or rejected quotes can be deleted")
	}
	return s.quoteRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}

func (s *QuoteService) ensureNotCascaded(ctx context.Context, tenantID, quoteID uuid.UUID) error {
	hasOrder, err := s.serviceOrderRepo.ExistsForQuote(ctx, tenantID, quoteID)
	if err != nil {
		return err
	}
	hasReceivable, err := s.receivableRepo.ExistsForQuote(ctx, tenantID, quoteID)
	if err != nil {
		return err
	}
	if hasOrder || hasReceivable {
		return shared.NewPreconditionError("This quote already has a service order or receivable")
	}
	return nil
}

// save uses the conditional write only when the caller sent a version
func (s *QuoteService) save(ctx context.Context, quote *trade.Quote, locked bool) error {
	if locked {
		return s.quoteRepo.SaveWithLock(ctx, quote)
	}
	return s.quoteRepo.Save(ctx, quote)
}

func (s *QuoteService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish quote events", zap.Error(err))
	}
}
