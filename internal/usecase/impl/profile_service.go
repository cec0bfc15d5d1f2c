// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	deliverycontext "samity/internal/delivery/context"
	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/domain/repository"
	"samity/internal/domain/service"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const dateOfBirthLayout = "2006-01-02"

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager  repository.TransactionManager
	normalizer service.PhotoNormalizer
	mediaStore service.MediaStore
	memberCard service.MemberCardService
	logger     *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Normalizer service.PhotoNormalizer
	MediaStore service.MediaStore
	MemberCard service.MemberCardService
	Logger     *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:  params.TxManager,
		normalizer: params.Normalizer,
		mediaStore: params.MediaStore,
		memberCard: params.MemberCard,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves the member's profile together with its owning account.
func (srv *profileService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Debug("Getting profile", slog.Any("accountID", accountID))

	var output *usecase.ProfileOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		account, findErr := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(findErr, "failed to find account")
		}

		if account.Profile == nil {
			return domainerrors.ErrProfileNotFound
		}

		output = &usecase.ProfileOutput{
			Account: account,
			Profile: account.Profile,
		}
		if account.Profile.PhotoPath != "" {
			output.PhotoURL = srv.mediaStore.URL(account.Profile.PhotoPath)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// UpdateProfile validates and saves profile fields, normalizing and storing
// the photo when one is supplied. A photo that cannot be decoded aborts the
// whole save with no partial state.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.Profile, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("accountID", accountID))

	dateOfBirth, err := time.Parse(dateOfBirthLayout, input.DateOfBirth)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.
			WithDetails("date_of_birth").
			WrapMessage("date of birth must be in YYYY-MM-DD format")
	}

	role := entity.Role(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.
			WithDetails("role").
			WrapMessage("unknown role")
	}

	// Normalize the photo before touching any state so a bad upload
	// leaves the existing profile untouched.
	var photoBytes []byte
	var photoKey string
	if len(input.Photo) > 0 {
		photoBytes, err = srv.normalizer.Normalize(input.Photo)
		if err != nil {
			srv.log(ctx).Warn("Photo normalization failed", slog.Any("accountID", accountID), slog.Any("error", err))

			return nil, domainerrors.ErrInvalidImage
		}
		photoKey = path.Join("photos", accountID.String(), filepath.Base(input.PhotoFilename))
	}

	var saved *entity.Profile
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()

		profile, findErr := profileRepo.FindByAccount(ctx, accountID)
		if findErr != nil {
			if !errors.Is(findErr, repository.ErrProfileNotFound) {
				return errors.Wrap(findErr, "failed to find profile")
			}
			// First edit creates the profile.
			profile = &entity.Profile{AccountID: accountID}
		}

		profile.Name = input.Name
		profile.FatherName = input.FatherName
		profile.MotherName = input.MotherName
		profile.DateOfBirth = dateOfBirth
		profile.BirthPlace = input.BirthPlace
		profile.PermanentAddress = input.PermanentAddress
		profile.BloodGroup = input.BloodGroup
		profile.PostCode = input.PostCode
		profile.PostOffice = input.PostOffice
		profile.Upazila = input.Upazila
		profile.District = input.District
		profile.City = input.City
		profile.Role = role
		if photoKey != "" {
			profile.PhotoPath = photoKey
		}

		if saveErr := profileRepo.Save(ctx, profile); saveErr != nil {
			return errors.Wrap(saveErr, "failed to save profile")
		}

		// Store the photo inside the transaction scope so a storage
		// failure rolls the profile row back.
		if photoKey != "" {
			if putErr := srv.mediaStore.Put(ctx, photoKey, photoBytes, "image/jpeg"); putErr != nil {
				return errors.Wrap(putErr, "failed to store profile photo")
			}
		}

		saved = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("accountID", accountID))

	return saved, nil
}

// MemberCard renders the member's card QR code as a PNG.
func (srv *profileService) MemberCard(ctx context.Context, accountID uuid.UUID) ([]byte, error) {
	// The card is only issued to members that completed their profile.
	if _, err := srv.GetProfile(ctx, accountID); err != nil {
		return nil, err
	}

	png, err := srv.memberCard.GenerateCardQR(accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate member card")
	}

	return png, nil
}
