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

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindByAccount retrieves the profile belonging to the given account.
func (repo *profileRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by account")
	}

	return toProfileDomain(&profileM), nil
}

// Save persists the profile, inserting it on first edit and updating it afterwards.
// The account_id primary key makes the upsert race-safe under concurrent edits.
func (repo *profileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "father_name", "mother_name", "date_of_birth", "birth_place",
				"permanent_address", "blood_group", "post_code", "post_office",
				"upazila", "district", "city", "role", "photo_path", "updated_at",
			}),
		}).
		Create(profileM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrAccountNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountUpdateFailed.WrapMessage("missing required profile information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		AccountID:        data.AccountID,
		Name:             data.Name,
		FatherName:       data.FatherName,
		MotherName:       data.MotherName,
		DateOfBirth:      data.DateOfBirth,
		BirthPlace:       data.BirthPlace,
		PermanentAddress: data.PermanentAddress,
		BloodGroup:       data.BloodGroup,
		PostCode:         data.PostCode,
		PostOffice:       data.PostOffice,
		Upazila:          data.Upazila,
		District:         data.District,
		City:             data.City,
		Role:             entity.Role(data.Role),
		PhotoPath:        data.PhotoPath,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		AccountID:        data.AccountID,
		Name:             data.Name,
		FatherName:       data.FatherName,
		MotherName:       data.MotherName,
		DateOfBirth:      data.DateOfBirth,
		BirthPlace:       data.BirthPlace,
		PermanentAddress: data.PermanentAddress,
		BloodGroup:       data.BloodGroup,
		PostCode:         data.PostCode,
		PostOffice:       data.PostOffice,
		Upazila:          data.Upazila,
		District:         data.District,
		City:             data.City,
		Role:             data.Role.String(),
		PhotoPath:        data.PhotoPath,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
