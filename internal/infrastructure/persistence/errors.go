package persistence

import (
	"errors"

	"github.com/grafica/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translate maps a GORM error to the domain taxonomy: missing rows become
// NotFound for entity, anything else StoreUnavailable
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return shared.AsStoreError(err)
}

// translateWrite maps a unique violation to AlreadyExists; everything else
// is StoreUnavailable
func translateWrite(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDomainError(shared.CodeAlreadyExists, message)
	}
	return shared.AsStoreError(err)
}

// requireAffected turns a zero-row write into NotFound
func requireAffected(result *gorm.DB, entity string) error {
	if result.Error != nil {
		return shared.AsStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(entity)
	}
	return nil
}

// requireVersion turns a zero-row conditional write into a concurrency conflict
func requireVersion(result *gorm.DB) error {
	if result.Error != nil {
		return shared.AsStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
