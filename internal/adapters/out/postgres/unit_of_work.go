// Package postgres provides the GORM-based Unit of Work used by every command
// handler. A unit of work opens one database transaction and hands out
// repositories bound to it, so an order, its history rows and the order number
// counter are written atomically.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	number, err := uow.OrderNumberSequence().Next(ctx)
//	if err != nil {
//	    return err
//	}
//	// build the order with number...
//	if err := uow.OrderRepository().Add(ctx, so); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Order updates are guarded by a version check, not by row locks held across requests
package postgres

import (
	"context"

	"repairdesk/internal/adapters/out/postgres/clientrepo"
	"repairdesk/internal/adapters/out/postgres/orderrepo"
	"repairdesk/internal/adapters/out/postgres/statusrepo"
	"repairdesk/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work isolated from concurrent ones.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes a
// deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// OrderNumberSequence provides the order number counter. It must be used after
// Begin so the number is only consumed if the creation commits.
func (uow *GormUnitOfWork) OrderNumberSequence() ports.OrderNumberSequence {
	return orderrepo.NewGormOrderNumberSequence(uow.conn())
}

// StatusRepository provides status definition persistence within the unit of work.
func (uow *GormUnitOfWork) StatusRepository() ports.StatusRepository {
	return statusrepo.NewGormStatusRepository(uow.conn())
}

// ClientRepository provides client persistence within the unit of work.
func (uow *GormUnitOfWork) ClientRepository() ports.ClientRepository {
	return clientrepo.NewGormClientRepository(uow.conn())
}
