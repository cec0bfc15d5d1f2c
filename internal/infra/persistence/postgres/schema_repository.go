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

// schemaRepository implements the repository.SchemaRepository interface.
type schemaRepository struct {
	db *gorm.DB
}

// NewSchemaRepository is the constructor for schemaRepository.
func NewSchemaRepository(db *gorm.DB) repository.SchemaRepository {
	return &schemaRepository{
		db: db,
	}
}

// ListDefinitions retrieves field definitions ordered by display order.
func (repo *schemaRepository) ListDefinitions(ctx context.Context, activeOnly bool) ([]*entity.ProfileFieldDefinition, error) {
	var defModels []*model.ProfileFieldDefinitionModel

	query := repo.db.WithContext(ctx).Order("display_order ASC, created_at ASC")
	if activeOnly {
		query = query.Where("is_active = true")
	}

	if err := query.Find(&defModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list field definitions")
	}

	defs := make([]*entity.ProfileFieldDefinition, 0, len(defModels))
	for _, defM := range defModels {
		defs = append(defs, toFieldDefinitionDomain(defM))
	}

	return defs, nil
}

// FindDefinitionByID retrieves a single field definition by its ID.
func (repo *schemaRepository) FindDefinitionByID(ctx context.Context, id uuid.UUID) (*entity.ProfileFieldDefinition, error) {
	var defM model.ProfileFieldDefinitionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&defM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFieldDefinitionNotFound
		}

		return nil, errors.Wrap(err, "failed to find field definition by ID")
	}

	return toFieldDefinitionDomain(&defM), nil
}

// FindDefinitionByName retrieves a single field definition by its unique name.
func (repo *schemaRepository) FindDefinitionByName(ctx context.Context, name string) (*entity.ProfileFieldDefinition, error) {
	var defM model.ProfileFieldDefinitionModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&defM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFieldDefinitionNotFound
		}

		return nil, errors.Wrap(err, "failed to find field definition by name")
	}

	return toFieldDefinitionDomain(&defM), nil
}

// CreateDefinition persists a new field definition.
func (repo *schemaRepository) CreateDefinition(ctx context.Context, def *entity.ProfileFieldDefinition) error {
	defM := fromFieldDefinitionDomain(def)

	if err := repo.db.WithContext(ctx).Create(defM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFieldName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create field definition")
	}

	def.ID = defM.ID
	def.CreatedAt = defM.CreatedAt
	def.UpdatedAt = defM.UpdatedAt

	return nil
}

// UpdateDefinition modifies an existing field definition.
func (repo *schemaRepository) UpdateDefinition(ctx context.Context, def *entity.ProfileFieldDefinition) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileFieldDefinitionModel{}).
		Where("id = ?", def.ID).
		Updates(map[string]interface{}{
			"name":          def.Name,
			"label":         def.Label,
			"type":          def.Type.String(),
			"required":      def.Required,
			"choices":       def.Choices,
			"display_order": def.DisplayOrder,
			"is_active":     def.IsActive,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateFieldName
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update field definition")
	}

	if result.RowsAffected == 0 {
		return repository.ErrFieldDefinitionNotFound
	}

	return nil
}

// UpsertValue stores a submitted value, overwriting any previous value
// for the same (account, field) pair.
func (repo *schemaRepository) UpsertValue(ctx context.Context, value *entity.ProfileFieldValue) error {
	valueM := fromFieldValueDomain(value)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(valueM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrFieldDefinitionNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert field value")
	}

	value.ID = valueM.ID
	value.CreatedAt = valueM.CreatedAt
	value.UpdatedAt = valueM.UpdatedAt

	return nil
}

// ListValues retrieves every value the given account has submitted.
func (repo *schemaRepository) ListValues(ctx context.Context, accountID uuid.UUID) ([]*entity.ProfileFieldValue, error) {
	var valueModels []*model.ProfileFieldValueModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&valueModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list field values")
	}

	values := make([]*entity.ProfileFieldValue, 0, len(valueModels))
	for _, valueM := range valueModels {
		values = append(values, toFieldValueDomain(valueM))
	}

	return values, nil
}

// --- Mapper Functions ---

// toFieldDefinitionDomain converts a GORM ProfileFieldDefinitionModel to a domain entity.
func toFieldDefinitionDomain(data *model.ProfileFieldDefinitionModel) *entity.ProfileFieldDefinition {
	if data == nil {
		return nil
	}

	return &entity.ProfileFieldDefinition{
		ID:           data.ID,
		Name:         data.Name,
		Label:        data.Label,
		Type:         entity.FieldType(data.Type),
		Required:     data.Required,
		Choices:      data.Choices,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromFieldDefinitionDomain converts a domain entity to a GORM ProfileFieldDefinitionModel.
func fromFieldDefinitionDomain(data *entity.ProfileFieldDefinition) *model.ProfileFieldDefinitionModel {
	if data == nil {
		return nil
	}

	return &model.ProfileFieldDefinitionModel{
		ID:           data.ID,
		Name:         data.Name,
		Label:        data.Label,
		Type:         data.Type.String(),
		Required:     data.Required,
		Choices:      data.Choices,
		DisplayOrder: data.DisplayOrder,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// toFieldValueDomain converts a GORM ProfileFieldValueModel to a domain entity.
func toFieldValueDomain(data *model.ProfileFieldValueModel) *entity.ProfileFieldValue {
	if data == nil {
		return nil
	}

	return &entity.ProfileFieldValue{
		ID:        data.ID,
		AccountID: data.AccountID,
		FieldID:   data.FieldID,
		Value:     data.Value,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromFieldValueDomain converts a domain entity to a GORM ProfileFieldValueModel.
func fromFieldValueDomain(data *entity.ProfileFieldValue) *model.ProfileFieldValueModel {
	if data == nil {
		return nil
	}

	return &model.ProfileFieldValueModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		FieldID:   data.FieldID,
		Value:     data.Value,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
