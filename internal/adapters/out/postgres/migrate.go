package postgres

import (
	"repairdesk/internal/adapters/out/postgres/clientrepo"
	"repairdesk/internal/adapters/out/postgres/orderrepo"
	"repairdesk/internal/adapters/out/postgres/statusrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns.
func Models() []any {
	models := []any{&statusrepo.StatusDTO{}, &clientrepo.ClientDTO{}}
	return append(models, orderrepo.Models()...)
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
