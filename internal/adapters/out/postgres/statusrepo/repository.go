package statusrepo

import (
	"context"
	"errors"

	"repairdesk/internal/core/domain/model/kernel"
	"repairdesk/internal/core/domain/model/status"
	"repairdesk/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormStatusRepository implements StatusRepository using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GORM status repository.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// Add saves a new status.
func (r *GormStatusRepository) Add(ctx context.Context, s *status.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictError("initial status", err)
		}
		return err
	}
	return nil
}

// Update overwrites every column of an existing status.
func (r *GormStatusRepository) Update(ctx context.Context, s *status.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).Model(&StatusDTO{}).Where("id = ?", dto.ID).Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return errs.NewConflictError("initial status", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("status", s.ID().String())
	}
	return nil
}

// Delete removes a status by ID.
func (r *GormStatusRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StatusDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("status", id.String())
	}
	return nil
}

// Get retrieves a status by ID.
func (r *GormStatusRepository) Get(ctx context.Context, id kernel.UUID) (*status.Status, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StatusDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every status.
func (r *GormStatusRepository) GetAll(ctx context.Context) ([]*status.Status, error) {
	var dtos []StatusDTO
	if err := r.db.WithContext(ctx).Order("sort_order, name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	statuses := make([]*status.Status, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, nil
}

// isUniqueViolation reports a duplicate key. Primary keys are random UUIDs, so
// in practice it is the single initial status index.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
