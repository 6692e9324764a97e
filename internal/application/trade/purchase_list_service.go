package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseListService handles shopping lists for materials
type PurchaseListService struct {
	listRepo       trade.PurchaseListRepository
	orderRepo      trade.ServiceOrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseListService creates a new PurchaseListService
func NewPurchaseListService(
	listRepo trade.PurchaseListRepository,
	orderRepo trade.ServiceOrderRepository,
	logger *zap.Logger,
) *PurchaseListService {
	return &PurchaseListService{
		listRepo:  listRepo,
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for item status notifications
func (s *PurchaseListService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending list, optionally tied to a service order of the tenant
func (s *PurchaseListService) Create(ctx context.Context, scope shared.TenantScope, req CreatePurchaseListRequest) (*PurchaseListResponse, error) {
	if req.ServiceOrderID != nil {
		if _, err := s.orderRepo.FindBaseByIDForTenant(ctx, scope.TenantID(), *req.ServiceOrderID); err != nil {
			return nil, err
		}
	}
	list := trade.NewPurchaseList(scope.TenantID(), req.ServiceOrderID, req.Title)
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}
	resp := ToPurchaseListResponse(list)
	return &resp, nil
}

// Get retrieves a list with its items
func (s *PurchaseListService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*PurchaseListResponse, error) {
	list, err := s.listRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseListResponse(list)
	return &resp, nil
}

// List retrieves lists, optionally only those of one service order
func (s *PurchaseListService) List(ctx context.Context, scope shared.TenantScope, serviceOrderID *uuid.UUID) ([]PurchaseListResponse, error) {
	lists, err := s.listRepo.FindAllForTenant(ctx, scope.TenantID(), serviceOrderID)
	if err != nil {
		return nil, err
	}
	result := make([]PurchaseListResponse, len(lists))
	for i := range lists {
		result[i] = ToPurchaseListResponse(&lists[i])
	}
	return result, nil
}

// Rename changes a list's title
func (s *PurchaseListService) Rename(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req UpdatePurchaseListRequest) (*PurchaseListResponse, error) {
	return s.mutate(ctx, scope, id, func(l *trade.PurchaseList) error {
		return l.Rename(req.Title)
	})
}

// SetStatus sets the list's own status; it is never derived from its items
func (s *PurchaseListService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req SetPurchaseStatusRequest) (*PurchaseListResponse, error) {
	return s.mutate(ctx, scope, id, func(l *trade.PurchaseList) error {
		return l.SetStatus(trade.PurchaseStatus(req.Status))
	})
}

// AddItem appends a pending item
func (s *PurchaseListService) AddItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req AddPurchaseItemRequest) (*PurchaseListResponse, error) {
	return s.mutate(ctx, scope, id, func(l *trade.PurchaseList) error {
		_, err := l.AddItem(req.Description, req.Quantity)
		return err
	})
}

// SetItemStatus changes one item's status
func (s *PurchaseListService) SetItemStatus(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req SetPurchaseStatusRequest) (*PurchaseListResponse, error) {
	item, err := s.listRepo.FindItem(ctx, scope.TenantID(), itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, item.ListID, func(l *trade.PurchaseList) error {
		return l.SetItemStatus(itemID, trade.PurchaseStatus(req.Status))
	})
}

// DeleteItem removes one item
func (s *PurchaseListService) DeleteItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*PurchaseListResponse, error) {
	item, err := s.listRepo.FindItem(ctx, scope.TenantID(), itemID)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, scope, item.ListID, func(l *trade.PurchaseList) error {
		return l.RemoveItem(itemID)
	})
}

// Delete removes a list and its items
func (s *PurchaseListService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	if _, err := s.listRepo.FindByIDForTenant(ctx, scope.TenantID(), id); err != nil {
		return err
	}
	return s.listRepo.DeleteForTenant(ctx, scope.TenantID(), id)
}

func (s *PurchaseListService) mutate(ctx context.Context, scope shared.TenantScope, id uuid.UUID, fn func(*trade.PurchaseList) error) (*PurchaseListResponse, error) {
	list, err := s.listRepo.FindByIDForTenant(ctx, scope.TenantID(), id)
	if err != nil {
		return nil, err
	}
	if err := fn(list); err != nil {
		return nil, err
	}
	list.IncrementVersion()
	if err := s.listRepo.Save(ctx, list); err != nil {
		return nil, err
	}

	if events := list.PullDomainEvents(); s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("Failed to publish purchase list events", zap.Error(err))
		}
	}
	resp := ToPurchaseListResponse(list)
	return &resp, nil
}
