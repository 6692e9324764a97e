package router

import (
	"github.com/gin-gonic/gin"
	"github.com/grafica/backend/internal/application/finance"
	"github.com/grafica/backend/internal/interfaces/http/handler"
)

// Handlers is every HTTP handler the API mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Tenant       *handler.TenantHandler
	Member       *handler.MemberHandler
	Quote        *handler.QuoteHandler
	ServiceOrder *handler.ServiceOrderHandler
	PurchaseList *handler.PurchaseListHandler
	Production   *handler.ProductionHandler
	Receivable   *handler.EntryHandler[finance.ReceivableResponse]
	Payable      *handler.EntryHandler[finance.PayableResponse]
	Client       *handler.PartyHandler
	Supplier     *handler.PartyHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Report       *handler.ReportHandler
	BoardStream  *handler.BoardStreamHandler
	System       *handler.SystemHandler
}

// Guards are the middleware chains the groups are built from
type Guards struct {
	// Authenticate validates the bearer token
	Authenticate gin.HandlerFunc
	// AuthenticateStream also accepts ?token= for websocket clients
	AuthenticateStream gin.HandlerFunc
	// Tenant resolves the active tenant scope
	Tenant gin.HandlerFunc
	// AuthRateLimit throttles sign-up and sign-in; may be nil
	AuthRateLimit gin.HandlerFunc
	// Module gates a group behind a client module path
	Module func(modulePath string) gin.HandlerFunc
}

// APIGroups builds the /api/v1 surface. Each tenant-scoped group is gated by
// the module whose screen it serves.
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	scoped := func(name, prefix, modulePath string) *DomainGroup {
		return NewDomainGroup(name, prefix).Use(g.Authenticate, g.Tenant, g.Module(modulePath))
	}

	public := NewDomainGroup("system", "").
		GET("/health", h.System.Health).
		GET("/system/info", h.System.GetSystemInfo)

	signIn := NewDomainGroup("auth", "/auth").Use(g.AuthRateLimit).
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login)

	session := NewDomainGroup("session", "").Use(g.Authenticate).
		POST("/auth/logout", h.Auth.Logout).
		GET("/auth/me", h.Auth.Me).
		GET("/session/tenants", h.Tenant.ListMemberships).
		GET("/session/tenant", h.Tenant.GetActive).
		PUT("/session/tenant", h.Tenant.SelectActive).
		POST("/tenants", h.Tenant.Create).
		PUT("/tenants/:id", h.Tenant.Update).
		DELETE("/tenants/:id", h.Tenant.Delete).
		GET("/access/check", h.Tenant.CheckAccess)

	quotes := scoped("quotes", "/quotes", "/orcamentos").
		GET("", h.Quote.List).
		POST("", h.Quote.Create).
		GET("/:id", h.Quote.Get).
		PUT("/:id", h.Quote.Update).
		DELETE("/:id", h.Quote.Delete).
		PUT("/:id/status", h.Quote.SetStatus).
		POST("/:id/approve", h.Quote.Approve)

	serviceOrders := scoped("service-orders", "/service-orders", "/ordens-servico").
		GET("", h.ServiceOrder.List).
		POST("", h.ServiceOrder.Create).
		GET("/:id", h.ServiceOrder.Get).
		PUT("/:id", h.ServiceOrder.Update).
		DELETE("/:id", h.ServiceOrder.Delete).
		PUT("/:id/status", h.ServiceOrder.SetStatus).
		POST("/:id/checklist", h.ServiceOrder.AddChecklistItem).
		PUT("/:id/checklist/order", h.ServiceOrder.ReorderChecklist).
		PATCH("/checklist/:itemId", h.ServiceOrder.ToggleChecklistItem).
		DELETE("/checklist/:itemId", h.ServiceOrder.RemoveChecklistItem)

	purchaseLists := scoped("purchase-lists", "/purchase-lists", "/listas-compras").
		GET("", h.PurchaseList.List).
		POST("", h.PurchaseList.Create).
		GET("/:id", h.PurchaseList.Get).
		PUT("/:id", h.PurchaseList.Update).
		DELETE("/:id", h.PurchaseList.Delete).
		PUT("/:id/status", h.PurchaseList.SetStatus).
		POST("/:id/items", h.PurchaseList.AddItem).
		PUT("/items/:itemId/status", h.PurchaseList.SetItemStatus).
		DELETE("/items/:itemId", h.PurchaseList.DeleteItem)

	production := scoped("production", "/production-orders", "/pedidos").
		GET("", h.Production.List).
		POST("", h.Production.Create).
		GET("/board", h.Production.Board).
		GET("/:id", h.Production.Get).
		PUT("/:id", h.Production.Update).
		DELETE("/:id", h.Production.Delete).
		PUT("/:id/move", h.Production.Move)

	groups := []*DomainGroup{public, signIn, session, quotes, serviceOrders, purchaseLists, production,
		entryGroup(scoped("receivables", "/receivables", "/contas-receber"), h.Receivable),
		entryGroup(scoped("payables", "/payables", "/contas-pagar"), h.Payable),
		partyGroup(scoped("clients", "/clients", "/clientes"), h.Client),
		partyGroup(scoped("suppliers", "/suppliers", "/fornecedores"), h.Supplier),
	}

	products := scoped("products", "/products", "/produtos").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/low-stock", h.Product.LowStock).
		GET("/:id", h.Product.Get).
		PUT("/:id", h.Product.Update).
		DELETE("/:id", h.Product.Delete)

	categories := scoped("categories", "/categories", "/categorias").
		GET("", h.Category.List).
		POST("", h.Category.Create).
		PUT("/:id", h.Category.Update).
		DELETE("/:id", h.Category.Delete)

	reports := scoped("reports", "/reports", "/").
		GET("/dashboard", h.Report.Dashboard)

	members := scoped("members", "/settings/members", "/configuracoes").
		GET("", h.Member.List).
		POST("", h.Member.Provision).
		PUT("/:userId/permissions", h.Member.SetPermissions).
		DELETE("/:userId", h.Member.Remove)

	// Any member of the tenant may watch the boards.
	stream := NewDomainGroup("stream", "/ws").Use(g.AuthenticateStream, g.Tenant).
		GET("/board", h.BoardStream.Stream)

	return append(groups, products, categories, reports, members, stream)
}

func entryGroup[R any](dg *DomainGroup, h *handler.EntryHandler[R]) *DomainGroup {
	return dg.
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		PUT("/:id/status", h.SetStatus).
		POST("/:id/settle", h.Settle).
		POST("/:id/cancel", h.Cancel)
}

func partyGroup(dg *DomainGroup, h *handler.PartyHandler) *DomainGroup {
	return dg.
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// Registrars adapts groups for Router.Register
func Registrars(groups []*DomainGroup) []RouteRegistrar {
	out := make([]RouteRegistrar, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}
