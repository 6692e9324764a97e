package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/finance"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReceivableRepository implements finance.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

func (r *GormReceivableRepository) joined(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return getDB(ctx, r.db).Model(&models.ReceivableModel{}).
		Joins("LEFT JOIN clients ON clients.id = receivables.client_id AND clients.tenant_id = receivables.tenant_id").
		Where("receivables.tenant_id = ?", tenantID)
}

// FindByIDForTenant loads a receivable with its client name
func (r *GormReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Receivable, error) {
	var model models.ReceivableModel
	err := r.joined(ctx, tenantID).
		Select("receivables.*, clients.name AS client_name").
		Where("receivables.id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Receivable")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists receivables with filtering and pagination
func (r *GormReceivableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.EntryFilter) ([]finance.Receivable, int64, error) {
	query := applyEntryFilter(r.joined(ctx, tenantID), "receivables", "client_id", "clients", filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	var rows []models.ReceivableModel
	query = applyOrder(query.Select("receivables.*, clients.name AS client_name"), "receivables", filter.Filter, EntrySortFields, "due_date")
	if err := applyPagination(query, filter.Filter).Find(&rows).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}
	items := make([]finance.Receivable, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// applyEntryFilter narrows a ledger table joined with its counterpart table.
// From and To bound the due date.
func applyEntryFilter(query *gorm.DB, table, counterpartColumn, counterpartTable string, filter finance.EntryFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where(table+".status = ?", filter.Status)
	}
	if filter.CounterpartID != nil {
		query = query.Where(table+"."+counterpartColumn+" = ?", *filter.CounterpartID)
	}
	if filter.CategoryID != nil {
		query = query.Where(table+".category_id = ?", *filter.CategoryID)
	}
	if filter.From != nil {
		query = query.Where(table+".due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(table+".due_date < ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER("+table+".description) LIKE ? OR LOWER("+counterpartTable+".name) LIKE ?", pattern, pattern)
	}
	return query
}

// ExistsForQuote reports whether a receivable was already raised for the quote
func (r *GormReceivableRepository) ExistsForQuote(ctx context.Context, tenantID, quoteID uuid.UUID) (bool, error) {
	return existsScoped(ctx, r.db, &models.ReceivableModel{}, tenantID, "quote_id", quoteID)
}

// Save inserts or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, rec *finance.Receivable) error {
	if err := getDB(ctx, r.db).Save(models.ReceivableModelFromDomain(rec)).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// SaveWithLock is Save conditioned on the stored version
func (r *GormReceivableRepository) SaveWithLock(ctx context.Context, rec *finance.Receivable) error {
	model := models.ReceivableModelFromDomain(rec)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := claimVersion(tx, &models.ReceivableModel{}, rec.TenantID, rec.ID, rec.Version); err != nil {
			return err
		}
		if err := tx.Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return nil
	})
}

// DeleteForTenant removes a receivable
func (r *GormReceivableRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, r.db, &models.ReceivableModel{}, tenantID, id, "Receivable")
}
