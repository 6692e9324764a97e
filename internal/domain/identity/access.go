package identity

import "strings"

// Module is a gated functional area, addressed by its route prefix
type Module struct {
	Path       string
	Name       string
	Permission Permission // empty means any authenticated member
	AdminOnly  bool
}

// Modules is the gate's registry, in the order used to pick a redirect target
var Modules = []Module{
	{Path: "/", Name: "Dashboard", Permission: PermissionDashboard},
	{Path: "/clientes", Name: "Clientes", Permission: PermissionCadastros},
	{Path: "/fornecedores", Name: "Fornecedores", Permission: PermissionCadastros},
	{Path: "/produtos", Name: "Produtos", Permission: PermissionCadastros},
	{Path: "/categorias", Name: "Categorias", Permission: PermissionCadastros},
	{Path: "/orcamentos", Name: "Orçamentos", Permission: PermissionComercial},
	{Path: "/ordens-servico", Name: "Ordens de Serviço", Permission: PermissionComercial},
	{Path: "/listas-compras", Name: "Listas de Compras", Permission: PermissionComercial},
	{Path: "/pedidos", Name: "Pedidos", Permission: PermissionProducao},
	{Path: "/contas-receber", Name: "Contas a Receber", Permission: PermissionFinanceiro},
	{Path: "/contas-pagar", Name: "Contas a Pagar", Permission: PermissionFinanceiro},
	{Path: "/relatorios", Name: "Relatórios", Permission: PermissionFinanceiro},
	{Path: "/configuracoes", Name: "Configurações", Permission: PermissionConfiguracoes, AdminOnly: true},
	{Path: "/empresas", Name: "Empresas"},
}

// FindModule resolves a route to its module by longest matching prefix
func FindModule(path string) (Module, bool) {
	var best Module
	found := false
	for _, m := range Modules {
		if !matchesPrefix(path, m.Path) {
			continue
		}
		if !found || len(m.Path) > len(best.Path) {
			best, found = m, true
		}
	}
	return best, found
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/" || path == ""
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// DecisionKind is the outcome of an access check
type DecisionKind string

const (
	DecisionAllow         DecisionKind = "allow"
	DecisionRedirectLogin DecisionKind = "redirect_login"
	DecisionRedirectHome  DecisionKind = "redirect_home"
	DecisionRedirect      DecisionKind = "redirect"
	DecisionRestricted    DecisionKind = "restricted"
)

// Decision is the gate's answer; RedirectTo is set only for DecisionRedirect
type Decision struct {
	Kind       DecisionKind `json:"kind"`
	RedirectTo string       `json:"redirect_to,omitempty"`
}

// Allowed reports whether access is granted
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Authorize decides access to a module. A nil principal means no
// authenticated session. It is a pure function of role, grants and the
// module's requirement.
func Authorize(p *Principal, module Module) Decision {
	if p == nil {
		return Decision{Kind: DecisionRedirectLogin}
	}
	if module.AdminOnly && !p.IsAdmin() {
		return Decision{Kind: DecisionRedirectHome}
	}
	if module.Permission == "" || p.Has(module.Permission) {
		return Decision{Kind: DecisionAllow}
	}
	for _, m := range Modules {
		if m.Path == module.Path || m.Permission == "" {
			continue
		}
		if m.AdminOnly && !p.IsAdmin() {
			continue
		}
		if p.Has(m.Permission) {
			return Decision{Kind: DecisionRedirect, RedirectTo: m.Path}
		}
	}
	return Decision{Kind: DecisionRestricted}
}
