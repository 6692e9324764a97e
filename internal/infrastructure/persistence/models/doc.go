// Package models contains GORM persistence models. Domain entities carry no
// ORM tags; each model converts to and from its entity with ToDomain and
// a ...ModelFromDomain constructor.
//
// Structure:
//   - base.go: shared columns (id, tenant_id, version, timestamps)
//   - identity.go: tenants, users, memberships, permission grants, sessions
//   - trade.go: quotes, service orders, checklists, purchase lists
//   - production.go: production orders
//   - finance.go: receivables and payables
//   - catalog.go / partner.go: reference data
package models
