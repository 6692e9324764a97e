package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Sequence names in tenant_sequences
const (
	sequenceQuote           = "quote"
	sequenceServiceOrder    = "service_order"
	sequenceProductionOrder = "production_order"
)

// withTx runs fn in the transaction carried by ctx, or opens one on root.
// Aggregate saves touch a parent row and its children, so they always need one.
func withTx(ctx context.Context, root *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(tx.WithContext(ctx))
	}
	return root.WithContext(ctx).Transaction(fn)
}

// nextSequence atomically increments and returns the per-tenant counter.
// Works on PostgreSQL and SQLite >= 3.35.
func nextSequence(ctx context.Context, root *gorm.DB, tenantID uuid.UUID, name string) (int64, error) {
	var value int64
	err := getDB(ctx, root).Raw(
		`INSERT INTO tenant_sequences (tenant_id, name, value) VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, name) DO UPDATE SET value = tenant_sequences.value + 1
		RETURNING value`,
		tenantID, name,
	).Scan(&value).Error
	if err != nil {
		return 0, shared.AsStoreError(err)
	}
	return value, nil
}

// claimVersion bumps the stored version from version-1 to version. Zero
// matched rows means another writer got there first.
func claimVersion(tx *gorm.DB, model any, tenantID, id uuid.UUID, version int) error {
	result := tx.Model(model).
		Where("tenant_id = ? AND id = ? AND version = ?", tenantID, id, version-1).
		UpdateColumn("version", version)
	return requireVersion(result)
}

// deleteScoped removes one tenant row and reports NotFound when nothing matched
func deleteScoped(ctx context.Context, root *gorm.DB, model any, tenantID, id uuid.UUID, entity string) error {
	result := getDB(ctx, root).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(model)
	return requireAffected(result, entity)
}

// existsScoped reports whether any tenant row matches column = value
func existsScoped(ctx context.Context, root *gorm.DB, model any, tenantID uuid.UUID, column string, value any) (bool, error) {
	var count int64
	err := getDB(ctx, root).Model(model).
		Where("tenant_id = ? AND "+column+" = ?", tenantID, value).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, shared.AsStoreError(err)
	}
	return count > 0, nil
}
