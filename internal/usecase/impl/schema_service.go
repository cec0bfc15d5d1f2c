// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "samity/internal/delivery/context"
	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// schemaService implements the SchemaUsecase interface.
type schemaService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// SchemaServiceParams holds dependencies for schemaService, injected by Fx.
type SchemaServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewSchemaService is the constructor for schemaService.
func NewSchemaService(params SchemaServiceParams) usecase.SchemaUsecase {
	return &schemaService{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *schemaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListFieldDefinitions lists definitions ordered by display order.
func (srv *schemaService) ListFieldDefinitions(ctx context.Context, activeOnly bool) ([]*entity.ProfileFieldDefinition, error) {
	var defs []*entity.ProfileFieldDefinition

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, listErr := repoFactory.SchemaRepo().ListDefinitions(ctx, activeOnly)
		if listErr != nil {
			return errors.Wrap(listErr, "failed to list field definitions")
		}
		defs = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return defs, nil
}

// CreateFieldDefinition registers a new field definition.
func (srv *schemaService) CreateFieldDefinition(ctx context.Context, input *usecase.FieldDefinitionInput) (*entity.ProfileFieldDefinition, error) {
	srv.log(ctx).Info("Creating field definition", slog.String("name", input.Name))

	def, err := buildDefinition(input)
	if err != nil {
		return nil, err
	}
	def.IsActive = true

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.SchemaRepo().CreateDefinition(ctx, def); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateFieldName) {
				return domainerrors.ErrFieldNameTaken
			}

			return errors.Wrap(createErr, "failed to create field definition")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return def, nil
}

// UpdateFieldDefinition modifies an existing field definition.
func (srv *schemaService) UpdateFieldDefinition(ctx context.Context, id uuid.UUID, input *usecase.FieldDefinitionInput) (*entity.ProfileFieldDefinition, error) {
	srv.log(ctx).Info("Updating field definition", slog.Any("fieldID", id))

	var updated *entity.ProfileFieldDefinition

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		schemaRepo := repoFactory.SchemaRepo()

		def, findErr := schemaRepo.FindDefinitionByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrFieldDefinitionNotFound) {
				return domainerrors.ErrFieldNotFound
			}

			return errors.Wrap(findErr, "failed to find field definition")
		}

		incoming, buildErr := buildDefinition(input)
		if buildErr != nil {
			return buildErr
		}

		def.Name = incoming.Name
		def.Label = incoming.Label
		def.Type = incoming.Type
		def.Required = incoming.Required
		def.Choices = incoming.Choices
		def.DisplayOrder = incoming.DisplayOrder

		if updateErr := schemaRepo.UpdateDefinition(ctx, def); updateErr != nil {
			if errors.Is(updateErr, repository.ErrDuplicateFieldName) {
				return domainerrors.ErrFieldNameTaken
			}

			return errors.Wrap(updateErr, "failed to update field definition")
		}
		updated = def

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeactivateFieldDefinition retires a definition without deleting the values
// already submitted against it.
func (srv *schemaService) DeactivateFieldDefinition(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deactivating field definition", slog.Any("fieldID", id))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		schemaRepo := repoFactory.SchemaRepo()

		def, findErr := schemaRepo.FindDefinitionByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrFieldDefinitionNotFound) {
				return domainerrors.ErrFieldNotFound
			}

			return errors.Wrap(findErr, "failed to find field definition")
		}

		if !def.IsActive {
			return nil
		}

		def.IsActive = false
		if updateErr := schemaRepo.UpdateDefinition(ctx, def); updateErr != nil {
			return errors.Wrap(updateErr, "failed to deactivate field definition")
		}

		return nil
	})
}

// SubmitFieldValues upserts the given name-to-value pairs for one account.
func (srv *schemaService) SubmitFieldValues(ctx context.Context, accountID uuid.UUID, values map[string]string) error {
	srv.log(ctx).Debug("Submitting field values", slog.Any("accountID", accountID), slog.Int("count", len(values)))

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		schemaRepo := repoFactory.SchemaRepo()

		for name, value := range values {
			def, findErr := schemaRepo.FindDefinitionByName(ctx, name)
			if findErr != nil {
				if errors.Is(findErr, repository.ErrFieldDefinitionNotFound) {
					return domainerrors.ErrValidationFailed.
						WithDetails(name).
						WrapMessage("unknown profile field")
				}

				return errors.Wrap(findErr, "failed to find field definition")
			}
			if !def.IsActive {
				return domainerrors.ErrValidationFailed.
					WithDetails(name).
					WrapMessage("profile field is no longer offered")
			}
			if def.Required && strings.TrimSpace(value) == "" {
				return domainerrors.ErrValidationFailed.
					WithDetails(name).
					WrapMessage("value is required")
			}
			if def.Type == entity.FieldTypeSelect {
				choices := def.ChoiceList()
				if value != "" && !slices.Contains(choices, value) {
					return domainerrors.ErrValidationFailed.
						WithDetails(name).
						WrapMessage("value is not one of the offered choices")
				}
			}

			fieldValue := &entity.ProfileFieldValue{
				AccountID: accountID,
				FieldID:   def.ID,
				Value:     value,
			}
			if upsertErr := schemaRepo.UpsertValue(ctx, fieldValue); upsertErr != nil {
				return errors.Wrap(upsertErr, "failed to upsert field value")
			}
		}

		return nil
	})
}

// ListFieldValues lists the account's submitted values joined with their
// definitions, in display order.
func (srv *schemaService) ListFieldValues(ctx context.Context, accountID uuid.UUID) ([]*usecase.FieldValueOutput, error) {
	var outputs []*usecase.FieldValueOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		schemaRepo := repoFactory.SchemaRepo()

		defs, listErr := schemaRepo.ListDefinitions(ctx, false)
		if listErr != nil {
			return errors.Wrap(listErr, "failed to list field definitions")
		}

		values, listErr := schemaRepo.ListValues(ctx, accountID)
		if listErr != nil {
			return errors.Wrap(listErr, "failed to list field values")
		}

		byField := make(map[uuid.UUID]*entity.ProfileFieldValue, len(values))
		for _, value := range values {
			byField[value.FieldID] = value
		}

		outputs = make([]*usecase.FieldValueOutput, 0, len(values))
		for _, def := range defs {
			value, ok := byField[def.ID]
			if !ok {
				continue
			}
			outputs = append(outputs, &usecase.FieldValueOutput{
				Definition: def,
				Value:      value.Value,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return outputs, nil
}

// buildDefinition validates raw input into an unsaved definition entity.
func buildDefinition(input *usecase.FieldDefinitionInput) (*entity.ProfileFieldDefinition, error) {
	fieldType := entity.FieldType(input.Type)
	if !fieldType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.
			WithDetails("type").
			WrapMessage("unknown field type")
	}

	return &entity.ProfileFieldDefinition{
		Name:         strings.TrimSpace(input.Name),
		Label:        strings.TrimSpace(input.Label),
		Type:         fieldType,
		Required:     input.Required,
		Choices:      input.Choices,
		DisplayOrder: input.DisplayOrder,
	}, nil
}
