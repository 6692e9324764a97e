package persistence

import (
	"fmt"

	"github.com/grafica/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the GORM models. PostgreSQL deployments
// use the SQL migrations instead; this serves SQLite development databases
// and tests.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.TenantModel{},
		&models.UserModel{},
		&models.MembershipModel{},
		&models.PermissionGrantModel{},
		&models.ActiveTenantModel{},
		&models.TenantSequenceModel{},
		&models.QuoteModel{},
		&models.QuoteLineModel{},
		&models.ServiceOrderModel{},
		&models.ChecklistItemModel{},
		&models.PurchaseListModel{},
		&models.PurchaseItemModel{},
		&models.ProductionOrderModel{},
		&models.ReceivableModel{},
		&models.PayableModel{},
		&models.ProductModel{},
		&models.CategoryModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, table := range []string{"clients", "suppliers"} {
		if err := db.Table(table).AutoMigrate(&models.PartyModel{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", table, err)
		}
	}
	return nil
}
