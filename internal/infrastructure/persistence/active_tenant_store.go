package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActiveTenantStore implements identity.ActiveTenantStore on the
// active_tenants table
type GormActiveTenantStore struct {
	db *gorm.DB
}

// NewGormActiveTenantStore creates a new GormActiveTenantStore
func NewGormActiveTenantStore(db *gorm.DB) *GormActiveTenantStore {
	return &GormActiveTenantStore{db: db}
}

// Get returns the stored selection, or uuid.Nil when there is none
func (s *GormActiveTenantStore) Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var model models.ActiveTenantModel
	err := getDB(ctx, s.db).Where("user_id = ?", userID).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, shared.AsStoreError(err)
	}
	return model.TenantID, nil
}

// Set upserts the user's selection
func (s *GormActiveTenantStore) Set(ctx context.Context, userID, tenantID uuid.UUID) error {
	err := getDB(ctx, s.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tenant_id", "updated_at"}),
	}).Create(&models.ActiveTenantModel{
		UserID:    userID,
		TenantID:  tenantID,
		UpdatedAt: time.Now(),
	}).Error
	return shared.AsStoreError(err)
}

// Clear forgets the user's selection
func (s *GormActiveTenantStore) Clear(ctx context.Context, userID uuid.UUID) error {
	err := getDB(ctx, s.db).Where("user_id = ?", userID).Delete(&models.ActiveTenantModel{}).Error
	return shared.AsStoreError(err)
}
