package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/partner"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ServiceOrderService handles service orders and their checklists
type ServiceOrderService struct {
	orderRepo      trade.ServiceOrderRepository
	clientRepo     partner.PartyRepository
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewServiceOrderService creates a new ServiceOrderService
func NewServiceOrderService(
	orderRepo trade.ServiceOrderRepository,
	clientRepo partner.PartyRepository,
	txManager shared.TransactionManager,
	logger *zap.Logger,
) *ServiceOrderService {
	return &ServiceOrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		txManager:  txManager,
		logger:     logger,
		now:        time.Now,
	}
}

// SetEventPublisher sets the event publisher for board notifications
func (s *ServiceOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a service order with the next sequence number and an optional
// initial checklist
func (s *ServiceOrderService) Create(ctx context.Context, scope shared.TenantScope, req CreateServiceOrderRequest) (*ServiceOrderResponse, error) {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.ClientID); err != nil {
		return nil, err
	}

	var order *trade.ServiceOrder
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		number, err := s.orderRepo.NextNumber(txCtx, scope.TenantID())
		if err != nil {
			return err
		}
		order, err = trade.NewServiceOrder(scope.TenantID(), number, trade.ServiceOrderDetails{
			Title:       req.Title,
			ClientID:    req.ClientID,
			Priority:    trade.Priority(req.Priority),
			OpenedAt:    req.OpenedAt,
			ExpectedAt:  req.ExpectedAt,
			Responsible: req.Responsible,
			Description: req.Description,
			Notes:       req.Notes,
		})
		if err != nil {
			return err
		}
		for _, description := range req.Checklist {
			if _, err := order.AddChecklistItem(description); err != nil {
				return err
			}
		}
		return s.orderRepo.Create(txCtx, order)
	})
	if err != nil {
		return nil, err
	}
	// checklist events from construction are not interesting to subscribers
	order.PullDomainEvents()

	s.logger.Info("Service order created",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("service_order_id", order.ID.String()),
		zap.Int64("number", order.Number),
	)
	resp := ToServiceOrderResponse(order, s.now())
	return &resp, nil
}

// Get retrieves a service order with client name and checklist. When the
// enriched read fails it falls back to the bare row and flags the result.
func (s *ServiceOrderService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*ServiceOrderResult, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err == nil {
		return &ServiceOrderResult{ServiceOrder: ToServiceOrderResponse(order, s.now())}, nil
	}
	if errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	s.logger.Warn("Enriched service order read failed, using base row",
		zap.String("tenant_id", scope.TenantID().String()),
		zap.String("service_order_id", id.String()),
		zap.Error(err),
	)
	order, err = s.orderRepo.FindBaseByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	return &ServiceOrderResult{ServiceOrder: ToServiceOrderResponse(order, s.now()), Degraded: true}, nil
}

// List retrieves service orders. Overdue is derived, so that filter is
// applied after loading.
func (s *ServiceOrderService) List(ctx context.Context, scope shared.TenantScope, filter ServiceOrderListFilter) (*ServiceOrderListResult, error) {
	domainFilter := trade.ServiceOrderFilter{
		Filter:   shared.DefaultFilter(),
		Status:   trade.ServiceOrderStatus(filter.Status),
		Priority: trade.Priority(filter.Priority),
		ClientID: filter.ClientID,
		QuoteID:  filter.QuoteID,
	}
	domainFilter.Search = filter.Search
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}

	degraded := false
	orders, err := s.orderRepo.FindAllForTenant(ctx, scope.TenantID(), domainFilter)
	if err != nil {
		s.logger.Warn("Enriched service order list failed, using base rows",
			zap.String("tenant_id", scope.TenantID().String()),
			zap.Error(err),
		)
		orders, err = s.orderRepo.FindAllBaseForTenant(ctx, scope.TenantID(), domainFilter)
		if err != nil {
			return nil, err
		}
		degraded = true
	}

	now := s.now()
	items := make([]ServiceOrderResponse, 0, len(orders))
	for i := range orders {
		if filter.Overdue != nil && orders[i].IsOverdue(now) != *filter.Overdue {
			continue
		}
		items = append(items, ToServiceOrderResponse(&orders[i], now))
	}
	return &ServiceOrderListResult{Items: items, Degraded: degraded}, nil
}

// Update replaces the editable fields
func (s *ServiceOrderService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdateServiceOrderRequest) (*ServiceOrderResponse, error) {
	if err := partner.VerifyReference(ctx, s.clientRepo, scope.TenantID(), req.ClientID); err != nil {
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

// SetStatus moves the order to another column
func (s *ServiceOrderService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SetServiceOrderStatusRequest) (*ServiceOrderResponse, error) {
	order, err := s.load(ctx, scope, id, req.Version)
	if err != nil {
		return nil, err
	}
	if err := order.SetStatus(trade.ServiceOrderStatus(req.Status), s.now()); err != nil {
		return nil, err
	}
	return s.commit(ctx, order, req.Version != nil)
}

// Delete removes an order and its checklist
func (s *ServiceOrderService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.orderRepo.FindBaseByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.orderRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}

// AddChecklistItem appends an item after whatever the order holds when the
// write lands
func (s *ServiceOrderService) AddChecklistItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req AddChecklistItemRequest) (*ServiceOrderResponse, error) {
	order, err := s.load(ctx, scope, id, nil)
	if err != nil {
		return nil, err
	}
	item, err := order.AddChecklistItem(req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.AddChecklistItem(ctx, scope.TenantID(), item); err != nil {
		return nil, err
	}
	return s.checklistChanged(ctx, scope, order)
}

// ToggleChecklistItem sets an item's done flag. Repeating the current value
// writes nothing.
func (s *ServiceOrderService) ToggleChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req ToggleChecklistItemRequest) (*ServiceOrderResponse, error) {
	order, err := s.loadByItem(ctx, scope, itemID)
	if err != nil {
		return nil, err
	}
	changed, err := order.ToggleChecklistItem(itemID, *req.Done, s.now())
	if err != nil {
		return nil, err
	}
	if !changed {
		resp := ToServiceOrderResponse(order, s.now())
		return &resp, nil
	}
	item := order.ChecklistItem(itemID)
	if err := s.orderRepo.UpdateChecklistItem(ctx, scope.TenantID(), item); err != nil {
		return nil, err
	}
	return s.checklistChanged(ctx, scope, order)
}

// RemoveChecklistItem deletes an item and closes the position gap
func (s *ServiceOrderService) RemoveChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*ServiceOrderResponse, error) {
	order, err := s.loadByItem(ctx, scope, itemID)
	if err != nil {
		return nil, err
	}
	if err := order.RemoveChecklistItem(itemID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.RemoveChecklistItem(ctx, scope.TenantID(), order.ID, itemID); err != nil {
		return nil, err
	}
	return s.checklistChanged(ctx, scope, order)
}

// ReorderChecklist rewrites checklist positions
func (s *ServiceOrderService) ReorderChecklist(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req ReorderChecklistRequest) (*ServiceOrderResponse, error) {
	order, err := s.load(ctx, scope, id, nil)
	if err != nil {
		return nil, err
	}
	if err := order.ReorderChecklist(req.ItemIDs); err != nil {
		return nil, err
	}
	if err := s.orderRepo.ReorderChecklist(ctx, scope.TenantID(), order.ID, req.ItemIDs); err != nil {
		return nil, err
	}
	return s.checklistChanged(ctx, scope, order)
}

// checklistChanged publishes the checklist events and answers with the
// stored order, which may hold items written by other callers
func (s *ServiceOrderService) checklistChanged(ctx context.Context, scope shared.TenantScope, order *trade.ServiceOrder) (*ServiceOrderResponse, error) {
	s.publishEvents(ctx, order)

	fresh, err := s.orderRepo.FindByIDForTenant(ctx, scope.TenantID(), order.ID)
	if err != nil {
		s.logger.Warn("Failed to reload service order after checklist change",
			zap.String("service_order_id", order.ID.String()),
			zap.Error(err),
		)
		fresh = order
	}
	resp := ToServiceOrderResponse(fresh, s.now())
	return &resp, nil
}

// load reads the enriched aggregate with its checklist
func (s *ServiceOrderService) load(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*trade.ServiceOrder, error) {
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

func (s *ServiceOrderService) loadByItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*trade.ServiceOrder, error) {
	item, err := s.orderRepo.FindChecklistItem(ctx, scope.TenantID(), itemID)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, scope, item.ServiceOrderID, nil)
}

func (s *ServiceOrderService) commit(ctx context.Context, order *trade.ServiceOrder, locked bool) (*ServiceOrderResponse, error) {
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

	s.publishEvents(ctx, order)
	resp := ToServiceOrderResponse(order, s.now())
	return &resp, nil
}

func (s *ServiceOrderService) publishEvents(ctx context.Context, order *trade.ServiceOrder) {
	if events := order.PullDomainEvents(); s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish service order events", zap.Error(err))
		}
	}
}
