// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statusRepository implements the repository.StatusRepository interface.
type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository is the constructor for statusRepository.
func NewStatusRepository(db *gorm.DB) repository.StatusRepository {
	return &statusRepository{
		db: db,
	}
}

// GetOrCreate returns the status record for the given account, materializing
// a default action-required record if none exists. ON CONFLICT DO NOTHING
// followed by a re-read keeps concurrent first touches race-safe.
func (repo *statusRepository) GetOrCreate(ctx context.Context, accountID uuid.UUID) (*entity.AccountStatus, error) {
	statusM := &model.AccountStatusModel{
		AccountID: accountID,
		Status:    entity.StatusActionRequired.String(),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoNothing: true,
		}).
		Create(statusM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to materialize account status")
	}

	// Re-read so a concurrent creator's row wins over our defaults.
	var current model.AccountStatusModel
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&current).Error; err != nil {
		return nil, errors.Wrap(err, "failed to read account status")
	}

	return toStatusDomain(&current), nil
}

// ListByStatus retrieves every status record currently in the given state.
func (repo *statusRepository) ListByStatus(ctx context.Context, status entity.Status) ([]*entity.AccountStatus, error) {
	var statusModels []*model.AccountStatusModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at ASC").
		Find(&statusModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list account statuses")
	}

	statuses := make([]*entity.AccountStatus, 0, len(statusModels))
	for _, statusM := range statusModels {
		statuses = append(statuses, toStatusDomain(statusM))
	}

	return statuses, nil
}

// Update persists a changed status record.
func (repo *statusRepository) Update(ctx context.Context, status *entity.AccountStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountStatusModel{}).
		Where("account_id = ?", status.AccountID).
		Update("status", status.Status.String())

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStatusNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toStatusDomain converts a GORM AccountStatusModel to a domain AccountStatus entity.
func toStatusDomain(data *model.AccountStatusModel) *entity.AccountStatus {
	if data == nil {
		return nil
	}

	return &entity.AccountStatus{
		AccountID: data.AccountID,
		Status:    entity.Status(data.Status),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
