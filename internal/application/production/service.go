package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/production"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Service handles production orders and the pipeline board
type Service struct {
	orderRepo      production.OrderRepository
	clientRepo     partner.PartyRepository
	quoteRepo      trade.QuoteFinder
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new production service
func NewService(
	orderRepo production.OrderRepository,
	clientRepo partner.PartyRepository,
	quoteRepo trade.QuoteFinder,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		quoteRepo:  quoteRepo,
		txManager:  txManager,
		logger:     logger,
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for board notifications
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create puts a new order in the waiting column
func (s *Service) Create(ctx context.Context, scope shared.TenantScope, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.verifyReferences(ctx, scope, req); err != nil {
		return nil, err
	}

	var order *production.Order
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.orderRepo.NextNumber(txCtx, scope.TenantID())
		if err != nil {
			return err
		}
		order, err = production.NewOrder(scope.TenantID(), number, req.toDetails())
		if err != nil {
			return err
		}
		return s.orderRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Production order created",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("order_id", order.ID.String()),
		zap.Int64("number", order.Number),
	)
	resp := ToOrderResponse(order)
	return &resp, nil
}

// verifyReferences rejects client and quote ids that belong to another tenant
func (s *Service) verifyReferences(ctx context.Context, scope shared.TenantScope, req CreateOrderRequest) error {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.ClientID); err != nil {
		return err
	}
	return trade.VerifyQuoteReference(ctx, s.quoteRepo, scope.TenantID(), req.QuoteID)
}

// Get retrieves a production order
func (s *Service) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List retrieves production orders
func (s *Service) List(ctx context.Context, scope shared.TenantScope, filter OrderListFilter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAllForTenant(ctx, scope.TenantID(), toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Board groups every order of the tenant into the five pipeline columns
func (s *Service) Board(ctx context.Context, scope shared.TenantScope) (*BoardResponse, error) {
	filter := toDomainFilter(OrderListFilter{})
	degraded := false
	orders, err := s.orderRepo.FindAllForTenant(ctx, scope.TenantID(), filter)
	if err != nil {
		s.logger.Warn("Enriched production board read failed, using base rows",
			zap.String("tenant_id", scope.TenantID().String()),
			zap.Error(err),
		)
		orders, err = s.orderRepo.FindAllBaseForTenant(ctx, scope.TenantID(), filter)
		if err != nil {
			return nil, err
		}
		degraded = true
	}

	columns := production.BuildBoard(orders)
	resp := &BoardResponse{Columns: make([]ColumnResponse, len(columns)), Degraded: degraded}
	for i, col := range columns {
		resp.Columns[i] = ColumnResponse{Status: string(col.Stage), Orders: ToOrderResponses(col.Orders)}
	}
	return resp, nil
}

// Update replaces the editable fields
func (s *Service) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if err := s.verifyReferences(ctx, scope, req.CreateOrderRequest); err != nil {
		return nil, err
	}
	order, err := s.load(ctx, scope, id, req.Version)
	if err != nil {
		return nil, err
	}
	if err := order.Update(req.toDetails()); err != nil {
		return nil, err
	}
	return s.commit(ctx, order, req.Version != nil)
}

// MoveTo overwrites the order's column; reaching delivered stamps the delivery date
func (s *Service) MoveTo(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req MoveOrderRequest) (*OrderResponse, error) {
	order, err := s.load(ctx, scope, id, req.Version)
	if err != nil {
		return nil, err
	}
	if err := order.MoveTo(production.Stage(req.Status), s.now()); err != nil {
		return nil, err
	}
	return s.commit(ctx, order, req.Version != nil)
}

// Delete removes a production order
func (s *Service) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.orderRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}

func (s *Service) load(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*production.Order, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if version != nil {
		if err := order.CheckVersion(*version); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (s *Service) commit(ctx context.Context, order *production.Order, locked bool) (*OrderResponse, error) {
	order.IncrementVersion()
	var err error
	if locked {
		err = s.orderRepo.SaveWithLock(ctx, order)
	} else {
		err = s.orderRepo.Save(ctx, order)
	}
	if err != nil {
		return nil, err
	}

	if events := order.PullDomainEvents(); s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish production events", zap.Error(err))
		}
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

func toDomainFilter(filter OrderListFilter) production.OrderFilter {
	f := production.OrderFilter{
		Filter:   shared.DefaultFilter(),
		Status:   production.Stage(filter.Status),
		ClientID: filter.ClientID,
	}
	f.Search = filter.Search
	f.OrderBy = "entry_date"
	f.OrderDir = "asc"
	return f
}
