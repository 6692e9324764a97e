package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/domain/trade"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements trade.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// joined scopes quotes to the tenant and joins the client for its name
func (r *GormQuoteRepository) joined(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return getDB(ctx, r.db).Model(&models.QuoteModel{}).
		Joins("LEFT JOIN clients ON clients.id = quotes.client_id AND clients.tenant_id = quotes.tenant_id").
		Where("quotes.tenant_id = ?", tenantID)
}

// FindByIDForTenant loads a quote with its lines and client name
func (r *GormQuoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quote, error) {
	var model models.QuoteModel
	err := r.joined(ctx, tenantID).
		Select("quotes.*, clients.name AS client_name").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("quotes.id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, translate(err, "Quote")
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists quotes without lines
func (r *GormQuoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.QuoteFilter) ([]trade.Quote, int64, error) {
	query := r.joined(ctx, tenantID)
	if filter.Status != "" {
		query = query.Where("quotes.status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("quotes.client_id = ?", *filter.ClientID)
	}
	if filter.From != nil {
		query = query.Where("quotes.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("quotes.created_at < ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			"LOWER(clients.name) LIKE ? OR LOWER(quotes.manual_number) LIKE ? OR CAST(quotes.number AS TEXT) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	var rows []models.QuoteModel
	query = applyOrder(query.Select("quotes.*, clients.name AS client_name"), "quotes", filter.Filter, QuoteSortFields, "created_at")
	if err := applyPagination(query, filter.Filter).Find(&rows).Error; err != nil {
		return nil, 0, shared.AsStoreError(err)
	}

	quotes := make([]trade.Quote, len(rows))
	for i := range rows {
		quotes[i] = *rows[i].ToDomain()
	}
	return quotes, total, nil
}

// Save inserts or updates a quote, replacing all of its lines
func (r *GormQuoteRepository) Save(ctx context.Context, quote *trade.Quote) error {
	model, lines := models.QuoteModelFromDomain(quote)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return r.replaceLines(tx, quote.ID, lines)
	})
}

// SaveWithLock is Save conditioned on the stored version being quote.Version-1
func (r *GormQuoteRepository) SaveWithLock(ctx context.Context, quote *trade.Quote) error {
	model, lines := models.QuoteModelFromDomain(quote)
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := claimVersion(tx, &models.QuoteModel{}, quote.TenantID, quote.ID, quote.Version); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return shared.AsStoreError(err)
		}
		return r.replaceLines(tx, quote.ID, lines)
	})
}

func (r *GormQuoteRepository) replaceLines(tx *gorm.DB, quoteID uuid.UUID, lines []models.QuoteLineModel) error {
	if err := tx.Where("quote_id = ?", quoteID).Delete(&models.QuoteLineModel{}).Error; err != nil {
		return shared.AsStoreError(err)
	}
	if len(lines) == 0 {
		return nil
	}
	if err := tx.Create(&lines).Error; err != nil {
		return shared.AsStoreError(err)
	}
	return nil
}

// DeleteForTenant removes a quote and its lines
func (r *GormQuoteRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("quote_id IN (?)",
			tx.Model(&models.QuoteModel{}).Select("id").Where("tenant_id = ? AND id = ?", tenantID, id),
		).Delete(&models.QuoteLineModel{}).Error; err != nil {
			return shared.AsStoreError(err)
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.QuoteModel{})
		return requireAffected(result, "Quote")
	})
}

// NextNumber returns the next quote number of the tenant
func (r *GormQuoteRepository) NextNumber(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return nextSequence(ctx, r.db, tenantID, sequenceQuote)
}
