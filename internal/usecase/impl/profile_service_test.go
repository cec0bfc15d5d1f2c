package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	domainerrors "samity/internal/domain/errors"
	"samity/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(store *memoryStore) (usecase.ProfileUsecase, *fakeMediaStore) {
	media := newFakeMediaStore()
	svc := NewProfileService(ProfileServiceParams{
		TxManager:  store,
		Normalizer: fakeNormalizer{},
		MediaStore: media,
		MemberCard: fakeMemberCard{},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, media
}

func validProfileInput() *usecase.UpdateProfileInput {
	return &usecase.UpdateProfileInput{
		Name:        "Rahim Uddin",
		DateOfBirth: "1990-06-15",
		District:    "Dhaka",
		Role:        "member",
	}
}

func TestProfileService_UpdateCreatesProfile(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	profile, err := svc.UpdateProfile(context.Background(), account.ID, validProfileInput())
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", profile.Name)
	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), profile.DateOfBirth)
	assert.Equal(t, "member", profile.Role.String())
	assert.Empty(t, profile.PhotoPath)
}

func TestProfileService_UpdateOverwritesExisting(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	store.seedProfile(account.ID, "member")

	input := validProfileInput()
	input.Name = "Rahim U."
	input.Role = "chairman"

	profile, err := svc.UpdateProfile(context.Background(), account.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Rahim U.", profile.Name)
	assert.Equal(t, "chairman", profile.Role.String())
	assert.Equal(t, profile, store.profiles[account.ID])
}

func TestProfileService_UpdateValidation(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	badDate := validProfileInput()
	badDate.DateOfBirth = "15/06/1990"
	_, err := svc.UpdateProfile(context.Background(), account.ID, badDate)
	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "date_of_birth", appErr.Details())

	badRole := validProfileInput()
	badRole.Role = "king"
	_, err = svc.UpdateProfile(context.Background(), account.ID, badRole)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "role", appErr.Details())

	// Nothing was saved.
	assert.Empty(t, store.profiles)
}

func TestProfileService_UpdateStoresNormalizedPhoto(t *testing.T) {
	store := newMemoryStore()
	svc, media := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	input := validProfileInput()
	input.Photo = []byte("raw image bytes")
	input.PhotoFilename = "me.png"

	profile, err := svc.UpdateProfile(context.Background(), account.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "photos/"+account.ID.String()+"/me.png", profile.PhotoPath)

	stored, err := media.Get(context.Background(), profile.PhotoPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg:raw image bytes"), stored)
}

func TestProfileService_UpdateRejectsUndecodablePhoto(t *testing.T) {
	store := newMemoryStore()
	svc, media := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	existing := store.seedProfile(account.ID, "member")

	input := validProfileInput()
	input.Photo = []byte("bad bytes")
	input.PhotoFilename = "broken.png"

	_, err := svc.UpdateProfile(context.Background(), account.ID, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidImage)

	// The whole save aborts: profile untouched, nothing stored.
	assert.Equal(t, existing, store.profiles[account.ID])
	assert.Empty(t, media.objects)
}

func TestProfileService_UpdateKeepsPhotoWhenNoneUploaded(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	existing := store.seedProfile(account.ID, "member")
	existing.PhotoPath = "photos/" + account.ID.String() + "/old.jpg"

	profile, err := svc.UpdateProfile(context.Background(), account.ID, validProfileInput())
	require.NoError(t, err)
	assert.Equal(t, existing.PhotoPath, profile.PhotoPath)
}

func TestProfileService_GetProfile(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	profile := store.seedProfile(account.ID, "president")
	profile.PhotoPath = "photos/x.jpg"

	output, err := svc.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, output.Account.ID)
	assert.Equal(t, "president", output.Profile.Role.String())
	assert.Equal(t, "/media/photos/x.jpg", output.PhotoURL)
}

func TestProfileService_GetProfileNotFound(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	_, err := svc.GetProfile(context.Background(), account.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
}

func TestProfileService_MemberCard(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newProfileService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	// No profile yet: no card.
	_, err := svc.MemberCard(context.Background(), account.ID)
	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)

	store.seedProfile(account.ID, "member")
	png, err := svc.MemberCard(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-"+account.ID.String()), png)
}
