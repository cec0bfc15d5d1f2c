package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"samity/internal/domain/entity"
	domainerrors "samity/internal/domain/errors"
	"samity/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchemaService(store *memoryStore) usecase.SchemaUsecase {
	return NewSchemaService(SchemaServiceParams{
		TxManager: store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func textFieldInput(name string, order int) *usecase.FieldDefinitionInput {
	return &usecase.FieldDefinitionInput{
		Name:         name,
		Label:        "Label for " + name,
		Type:         "text",
		DisplayOrder: order,
	}
}

func TestSchemaService_CreateFieldDefinition(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)

	def, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("nid_number", 1))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, def.ID)
	assert.True(t, def.IsActive)
	assert.Equal(t, entity.FieldTypeText, def.Type)

	_, err = svc.CreateFieldDefinition(context.Background(), textFieldInput("nid_number", 2))
	assert.ErrorIs(t, err, domainerrors.ErrFieldNameTaken)

	_, err = svc.CreateFieldDefinition(context.Background(), &usecase.FieldDefinitionInput{
		Name: "weird", Label: "Weird", Type: "checkbox",
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "type", appErr.Details())
}

func TestSchemaService_UpdateFieldDefinition(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)
	def, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("occupation", 1))
	require.NoError(t, err)

	updated, err := svc.UpdateFieldDefinition(context.Background(), def.ID, &usecase.FieldDefinitionInput{
		Name:         "occupation",
		Label:        "Current Occupation",
		Type:         "select",
		Required:     true,
		Choices:      "farmer, teacher, trader",
		DisplayOrder: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Current Occupation", updated.Label)
	assert.Equal(t, entity.FieldTypeSelect, updated.Type)
	assert.True(t, updated.Required)
	assert.Equal(t, []string{"farmer", "teacher", "trader"}, updated.ChoiceList())
	assert.Equal(t, 5, updated.DisplayOrder)

	_, err = svc.UpdateFieldDefinition(context.Background(), uuid.New(), textFieldInput("other", 1))
	assert.ErrorIs(t, err, domainerrors.ErrFieldNotFound)
}

func TestSchemaService_DeactivateFieldDefinition(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)
	def, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("occupation", 1))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateFieldDefinition(context.Background(), def.ID))
	assert.False(t, store.defs[def.ID].IsActive)

	// Deactivating twice is a no-op.
	require.NoError(t, svc.DeactivateFieldDefinition(context.Background(), def.ID))

	assert.ErrorIs(t, svc.DeactivateFieldDefinition(context.Background(), uuid.New()), domainerrors.ErrFieldNotFound)

	active, err := svc.ListFieldDefinitions(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.ListFieldDefinitions(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSchemaService_SubmitFieldValues(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)
	def, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("nid_number", 1))
	require.NoError(t, err)

	err = svc.SubmitFieldValues(context.Background(), account.ID, map[string]string{"nid_number": "1990123456789"})
	require.NoError(t, err)
	assert.Equal(t, "1990123456789", store.values[valueKey(account.ID, def.ID)].Value)

	// Resubmitting overwrites rather than duplicating.
	err = svc.SubmitFieldValues(context.Background(), account.ID, map[string]string{"nid_number": "2000987654321"})
	require.NoError(t, err)
	assert.Len(t, store.values, 1)
	assert.Equal(t, "2000987654321", store.values[valueKey(account.ID, def.ID)].Value)
}

func TestSchemaService_SubmitFieldValuesValidation(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	_, err := svc.CreateFieldDefinition(context.Background(), &usecase.FieldDefinitionInput{
		Name: "blood_donor", Label: "Blood Donor", Type: "select", Choices: "yes, no",
	})
	require.NoError(t, err)
	_, err = svc.CreateFieldDefinition(context.Background(), &usecase.FieldDefinitionInput{
		Name: "nid_number", Label: "NID Number", Type: "text", Required: true,
	})
	require.NoError(t, err)
	retired, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("old_field", 9))
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateFieldDefinition(context.Background(), retired.ID))

	cases := []struct {
		name    string
		values  map[string]string
		details string
	}{
		{"unknown field", map[string]string{"shoe_size": "42"}, "shoe_size"},
		{"inactive field", map[string]string{"old_field": "x"}, "old_field"},
		{"required blank", map[string]string{"nid_number": "   "}, "nid_number"},
		{"select off-list", map[string]string{"blood_donor": "maybe"}, "blood_donor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SubmitFieldValues(context.Background(), account.ID, tc.values)
			require.Error(t, err)
			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.details, appErr.Details())
		})
	}

	// A select field accepts a listed choice and an empty optional value.
	err = svc.SubmitFieldValues(context.Background(), account.ID, map[string]string{"blood_donor": "yes"})
	require.NoError(t, err)
	err = svc.SubmitFieldValues(context.Background(), account.ID, map[string]string{"blood_donor": ""})
	require.NoError(t, err)
}

func TestSchemaService_ListFieldValues(t *testing.T) {
	store := newMemoryStore()
	svc := newSchemaService(store)
	account := store.seedAccount("rahim", "rahim@example.com", true, false)

	second, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("occupation", 2))
	require.NoError(t, err)
	first, err := svc.CreateFieldDefinition(context.Background(), textFieldInput("nid_number", 1))
	require.NoError(t, err)
	_, err = svc.CreateFieldDefinition(context.Background(), textFieldInput("unanswered", 3))
	require.NoError(t, err)

	err = svc.SubmitFieldValues(context.Background(), account.ID, map[string]string{
		"occupation": "farmer",
		"nid_number": "1990123456789",
	})
	require.NoError(t, err)

	values, err := svc.ListFieldValues(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, values, 2)

	// Display order wins over submission order, unanswered fields are skipped.
	assert.Equal(t, first.ID, values[0].Definition.ID)
	assert.Equal(t, "1990123456789", values[0].Value)
	assert.Equal(t, second.ID, values[1].Definition.ID)
	assert.Equal(t, "farmer", values[1].Value)
}
