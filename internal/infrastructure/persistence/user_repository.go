package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/grafica/backend/internal/domain/identity"
	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := getDB(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err, "User")
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var model models.UserModel
	if err := getDB(ctx, r.db).First(&model, "email = ?", email).Error; err != nil {
		return nil, translate(err, "User")
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the users among ids; unknown ids are skipped
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	if len(ids) == 0 {
		return []identity.User{}, nil
	}
	var rows []models.UserModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Order("email ASC").Find(&rows).Error; err != nil {
		return nil, translate(err, "User")
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Create inserts a user; a taken email is AlreadyExists
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	err := getDB(ctx, r.db).Create(models.UserModelFromDomain(user)).Error
	return translateWrite(err, "A user with this email already exists")
}
