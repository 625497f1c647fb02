package migrations

import (
	"gorm.io/gorm"

	"shipdesk/internal/infrastructure/persistence/models"
)

func MigrateTicketTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.ActivityModel{},
		&models.AttachmentModel{},
	)
}
