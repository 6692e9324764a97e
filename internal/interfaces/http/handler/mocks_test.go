package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/application/catalog"
	"github.com/grafica/backend/internal/application/finance"
	"github.com/grafica/backend/internal/application/identity"
	"github.com/grafica/backend/internal/application/partner"
	"github.com/grafica/backend/internal/application/production"
	"github.com/grafica/backend/internal/application/trade"
	domainidentity "github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/domain/report"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/mock"
)

// result extracts a typed pointer from a mock return slot
func result[T any](args mock.Arguments, i int) *T {
	if v := args.Get(i); v != nil {
		return v.(*T)
	}
	return nil
}

func slice[T any](args mock.Arguments, i int) []T {
	if v := args.Get(i); v != nil {
		return v.([]T)
	}
	return nil
}

// ==================== identity ====================

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, input identity.RegisterInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	return result[identity.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, input identity.LoginInput) (*identity.AuthResult, error) {
	args := m.Called(ctx, input)
	return result[identity.AuthResult](args, 0), args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockAuthService) Me(ctx context.Context, userID uuid.UUID) (*identity.UserDTO, error) {
	args := m.Called(ctx, userID)
	return result[identity.UserDTO](args, 0), args.Error(1)
}

type mockTenantService struct{ mock.Mock }

func (m *mockTenantService) ListMemberships(ctx context.Context, userID uuid.UUID) ([]identity.MembershipDTO, error) {
	args := m.Called(ctx, userID)
	return slice[identity.MembershipDTO](args, 0), args.Error(1)
}

func (m *mockTenantService) SelectActive(ctx context.Context, userID, tenantID uuid.UUID) (*identity.MembershipDTO, error) {
	args := m.Called(ctx, userID, tenantID)
	return result[identity.MembershipDTO](args, 0), args.Error(1)
}

func (m *mockTenantService) RestoreActive(ctx context.Context, userID uuid.UUID) (*identity.MembershipDTO, error) {
	args := m.Called(ctx, userID)
	return result[identity.MembershipDTO](args, 0), args.Error(1)
}

func (m *mockTenantService) ResolveScope(ctx context.Context, userID, requested uuid.UUID) (shared.TenantScope, error) {
	args := m.Called(ctx, userID, requested)
	return args.Get(0).(shared.TenantScope), args.Error(1)
}

func (m *mockTenantService) Create(ctx context.Context, userID uuid.UUID, input identity.CreateTenantInput) (*identity.MembershipDTO, error) {
	args := m.Called(ctx, userID, input)
	return result[identity.MembershipDTO](args, 0), args.Error(1)
}

func (m *mockTenantService) Update(ctx context.Context, userID, tenantID uuid.UUID, input identity.UpdateTenantInput) (*identity.TenantDTO, error) {
	args := m.Called(ctx, userID, tenantID, input)
	return result[identity.TenantDTO](args, 0), args.Error(1)
}

func (m *mockTenantService) Delete(ctx context.Context, userID, tenantID uuid.UUID) (*identity.MembershipDTO, error) {
	args := m.Called(ctx, userID, tenantID)
	return result[identity.MembershipDTO](args, 0), args.Error(1)
}

type mockAccessGate struct {
	mock.Mock
	access *identity.AccessService
}

func (m *mockAccessGate) Principal(ctx context.Context, scope shared.TenantScope) (*domainidentity.Principal, error) {
	args := m.Called(ctx, scope)
	return result[domainidentity.Principal](args, 0), args.Error(1)
}

// Check runs the real route table so tests see genuine decisions
func (m *mockAccessGate) Check(principal *domainidentity.Principal, path string) identity.AccessDecisionDTO {
	return m.access.Check(principal, path)
}

type mockMemberService struct{ mock.Mock }

func (m *mockMemberService) Provision(ctx context.Context, scope shared.TenantScope, input identity.ProvisionUserInput) (*identity.MemberDTO, error) {
	args := m.Called(ctx, scope, input)
	return result[identity.MemberDTO](args, 0), args.Error(1)
}

func (m *mockMemberService) ListMembers(ctx context.Context, scope shared.TenantScope) ([]identity.MemberDTO, error) {
	args := m.Called(ctx, scope)
	return slice[identity.MemberDTO](args, 0), args.Error(1)
}

func (m *mockMemberService) SetPermissions(ctx context.Context, scope shared.TenantScope, userID uuid.UUID, input identity.SetPermissionsInput) (*identity.MemberDTO, error) {
	args := m.Called(ctx, scope, userID, input)
	return result[identity.MemberDTO](args, 0), args.Error(1)
}

func (m *mockMemberService) Remove(ctx context.Context, scope shared.TenantScope, userID uuid.UUID) error {
	return m.Called(ctx, scope, userID).Error(0)
}

// ==================== trade ====================

type mockQuoteService struct{ mock.Mock }

func (m *mockQuoteService) Create(ctx context.Context, scope shared.TenantScope, req trade.CreateQuoteRequest) (*trade.QuoteResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[trade.QuoteResponse](args, 0), args.Error(1)
}

func (m *mockQuoteService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.QuoteResponse, error) {
	args := m.Called(ctx, scope, id)
	return result[trade.QuoteResponse](args, 0), args.Error(1)
}

func (m *mockQuoteService) List(ctx context.Context, scope shared.TenantScope, filter trade.QuoteListFilter) (*shared.Paginated[trade.QuoteResponse], error) {
	args := m.Called(ctx, scope, filter)
	return result[shared.Paginated[trade.QuoteResponse]](args, 0), args.Error(1)
}

func (m *mockQuoteService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdateQuoteRequest) (*trade.QuoteResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.QuoteResponse](args, 0), args.Error(1)
}

func (m *mockQuoteService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetQuoteStatusRequest) (*trade.QuoteResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.QuoteResponse](args, 0), args.Error(1)
}

func (m *mockQuoteService) Approve(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.ApproveQuoteRequest) (*trade.ApprovalResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.ApprovalResponse](args, 0), args.Error(1)
}

func (m *mockQuoteService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

type mockServiceOrderService struct{ mock.Mock }

func (m *mockServiceOrderService) Create(ctx context.Context, scope shared.TenantScope, req trade.CreateServiceOrderRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.ServiceOrderResult, error) {
	args := m.Called(ctx, scope, id)
	return result[trade.ServiceOrderResult](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) List(ctx context.Context, scope shared.TenantScope, filter trade.ServiceOrderListFilter) (*trade.ServiceOrderListResult, error) {
	args := m.Called(ctx, scope, filter)
	return result[trade.ServiceOrderListResult](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdateServiceOrderRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetServiceOrderStatusRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *mockServiceOrderService) AddChecklistItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.AddChecklistItemRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) ToggleChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req trade.ToggleChecklistItemRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, itemID, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) RemoveChecklistItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, itemID)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

func (m *mockServiceOrderService) ReorderChecklist(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.ReorderChecklistRequest) (*trade.ServiceOrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.ServiceOrderResponse](args, 0), args.Error(1)
}

type mockPurchaseListService struct{ mock.Mock }

func (m *mockPurchaseListService) Create(ctx context.Context, scope shared.TenantScope, req trade.CreatePurchaseListRequest) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, id)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) List(ctx context.Context, scope shared.TenantScope, serviceOrderID *uuid.UUID) ([]trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, serviceOrderID)
	return slice[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) Rename(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.UpdatePurchaseListRequest) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.SetPurchaseStatusRequest) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) AddItem(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req trade.AddPurchaseItemRequest) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) SetItemStatus(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID, req trade.SetPurchaseStatusRequest) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, itemID, req)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) DeleteItem(ctx context.Context, scope shared.TenantScope, itemID uuid.UUID) (*trade.PurchaseListResponse, error) {
	args := m.Called(ctx, scope, itemID)
	return result[trade.PurchaseListResponse](args, 0), args.Error(1)
}

func (m *mockPurchaseListService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

// ==================== production ====================

type mockProductionService struct{ mock.Mock }

func (m *mockProductionService) Create(ctx context.Context, scope shared.TenantScope, req production.CreateOrderRequest) (*production.OrderResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[production.OrderResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*production.OrderResponse, error) {
	args := m.Called(ctx, scope, id)
	return result[production.OrderResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) List(ctx context.Context, scope shared.TenantScope, filter production.OrderListFilter) ([]production.OrderResponse, error) {
	args := m.Called(ctx, scope, filter)
	return slice[production.OrderResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) Board(ctx context.Context, scope shared.TenantScope) (*production.BoardResponse, error) {
	args := m.Called(ctx, scope)
	return result[production.BoardResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req production.UpdateOrderRequest) (*production.OrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[production.OrderResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) MoveTo(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req production.MoveOrderRequest) (*production.OrderResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[production.OrderResponse](args, 0), args.Error(1)
}

func (m *mockProductionService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

// ==================== finance ====================

type mockEntryService[R any] struct{ mock.Mock }

func (m *mockEntryService[R]) Create(ctx context.Context, scope shared.TenantScope, req finance.EntryRequest) (*R, error) {
	args := m.Called(ctx, scope, req)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*R, error) {
	args := m.Called(ctx, scope, id)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) List(ctx context.Context, scope shared.TenantScope, filter finance.EntryListFilter) (*shared.Paginated[R], error) {
	args := m.Called(ctx, scope, filter)
	return result[shared.Paginated[R]](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.UpdateEntryRequest) (*R, error) {
	args := m.Called(ctx, scope, id, req)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) Settle(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.SettleRequest) (*R, error) {
	args := m.Called(ctx, scope, id, req)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) Cancel(ctx context.Context, scope shared.TenantScope, id uuid.UUID, version *int) (*R, error) {
	args := m.Called(ctx, scope, id, version)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) SetStatus(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req finance.SetEntryStatusRequest) (*R, error) {
	args := m.Called(ctx, scope, id, req)
	return result[R](args, 0), args.Error(1)
}

func (m *mockEntryService[R]) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

// ==================== catalog and partners ====================

type mockProductService struct{ mock.Mock }

func (m *mockProductService) Create(ctx context.Context, scope shared.TenantScope, req catalog.ProductRequest) (*catalog.ProductResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[catalog.ProductResponse](args, 0), args.Error(1)
}

func (m *mockProductService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*catalog.ProductResponse, error) {
	args := m.Called(ctx, scope, id)
	return result[catalog.ProductResponse](args, 0), args.Error(1)
}

func (m *mockProductService) List(ctx context.Context, scope shared.TenantScope, filter catalog.ProductListFilter) (*shared.Paginated[catalog.ProductResponse], error) {
	args := m.Called(ctx, scope, filter)
	return result[shared.Paginated[catalog.ProductResponse]](args, 0), args.Error(1)
}

func (m *mockProductService) LowStock(ctx context.Context, scope shared.TenantScope) ([]catalog.ProductResponse, error) {
	args := m.Called(ctx, scope)
	return slice[catalog.ProductResponse](args, 0), args.Error(1)
}

func (m *mockProductService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req catalog.UpdateProductRequest) (*catalog.ProductResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[catalog.ProductResponse](args, 0), args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

type mockCategoryService struct{ mock.Mock }

func (m *mockCategoryService) Create(ctx context.Context, scope shared.TenantScope, req catalog.CategoryRequest) (*catalog.CategoryResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[catalog.CategoryResponse](args, 0), args.Error(1)
}

func (m *mockCategoryService) List(ctx context.Context, scope shared.TenantScope, kind string) ([]catalog.CategoryResponse, error) {
	args := m.Called(ctx, scope, kind)
	return slice[catalog.CategoryResponse](args, 0), args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req catalog.CategoryRequest) (*catalog.CategoryResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[catalog.CategoryResponse](args, 0), args.Error(1)
}

func (m *mockCategoryService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

type mockPartyService struct{ mock.Mock }

func (m *mockPartyService) Create(ctx context.Context, scope shared.TenantScope, req partner.PartyRequest) (*partner.PartyResponse, error) {
	args := m.Called(ctx, scope, req)
	return result[partner.PartyResponse](args, 0), args.Error(1)
}

func (m *mockPartyService) Get(ctx context.Context, scope shared.TenantScope, id uuid.UUID) (*partner.PartyResponse, error) {
	args := m.Called(ctx, scope, id)
	return result[partner.PartyResponse](args, 0), args.Error(1)
}

func (m *mockPartyService) List(ctx context.Context, scope shared.TenantScope, filter partner.PartyListFilter) (*shared.Paginated[partner.PartyResponse], error) {
	args := m.Called(ctx, scope, filter)
	return result[shared.Paginated[partner.PartyResponse]](args, 0), args.Error(1)
}

func (m *mockPartyService) Update(ctx context.Context, scope shared.TenantScope, id uuid.UUID, req partner.UpdatePartyRequest) (*partner.PartyResponse, error) {
	args := m.Called(ctx, scope, id, req)
	return result[partner.PartyResponse](args, 0), args.Error(1)
}

func (m *mockPartyService) Delete(ctx context.Context, scope shared.TenantScope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

// ==================== report and streaming ====================

type mockLedgerService struct{ mock.Mock }

func (m *mockLedgerService) Dashboard(ctx context.Context, scope shared.TenantScope) (*report.Dashboard, error) {
	args := m.Called(ctx, scope)
	return result[report.Dashboard](args, 0), args.Error(1)
}

type mockStreamer struct{ mock.Mock }

func (m *mockStreamer) Serve(w http.ResponseWriter, r *http.Request, tenantID, userID uuid.UUID) error {
	return m.Called(w, r, tenantID, userID).Error(0)
}
