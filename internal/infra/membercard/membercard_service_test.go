package membercard

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"samity/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCardQRProducesPNG(t *testing.T) {
	svc := NewMemberCardService(&config.Config{})
	accountID := uuid.New()

	data, err := svc.GenerateCardQR(accountID)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestGenerateCardQRConfiguredSize(t *testing.T) {
	svc := NewMemberCardService(&config.Config{
		MemberCard: &config.MemberCardConfig{Size: 128, ErrorCorrectionLevel: "H"},
	})

	data, err := svc.GenerateCardQR(uuid.New())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestParseCardQR(t *testing.T) {
	svc := NewMemberCardService(&config.Config{})
	accountID := uuid.New()

	payload, err := json.Marshal(CardData{AccountID: accountID.String(), Type: "member_card"})
	require.NoError(t, err)

	parsed, err := svc.ParseCardQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, accountID, parsed)
}

func TestParseCardQRRejections(t *testing.T) {
	svc := NewMemberCardService(&config.Config{})

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "not-json"},
		{"wrong type", `{"account_id":"` + uuid.New().String() + `","type":"coupon"}`},
		{"bad account id", `{"account_id":"nope","type":"member_card"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ParseCardQR(tc.payload)
			assert.Error(t, err)
		})
	}
}
