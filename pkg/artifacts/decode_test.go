package artifacts

import (
	"testing"

	"github.com/samvad-hq/artifacts-client/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"data":{"status":"online","version":"1.0","characters_online":5,"announcements":[{"message":"hi","created_at":"2024-01-01"}],"last_wipe":"2023-01-01","next_wipe":"2025-01-01"}}`

func TestDecodeStatusSample(t *testing.T) {
	info, err := DecodeStatus([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInfo{
		Status:           "online",
		Version:          "1.0",
		CharactersOnline: 5,
		Announcements:    []domain.Announcement{{Message: "hi", CreatedAt: "2024-01-01"}},
		LastWipe:         "2023-01-01",
		NextWipe:         "2025-01-01",
	}, info)
}

func TestDecodeStatusIgnoresExtraEnvelopeFields(t *testing.T) {
	raw := `{"meta":{"x":1},"data":{"status":"online","version":"2","characters_online":0,"announcements":[],"last_wipe":"a","next_wipe":"b","extra":true}}`
	info, err := DecodeStatus([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, info.Announcements)
	assert.Equal(t, "2", info.Version)
}

func TestDecodeStatusFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		path string
	}{
		{"malformed", `{"data":`, ""},
		{"not an object", `[]`, ""},
		{"missing data", `{"status":"online"}`, "data"},
		{"null data", `{"data":null}`, "data"},
		{"data wrong type", `{"data":"online"}`, "data"},
		{"missing status", `{"data":{"version":"1.0","characters_online":5,"announcements":[],"last_wipe":"a","next_wipe":"b"}}`, "data.status"},
		{"missing characters_online", `{"data":{"status":"s","version":"1.0","announcements":[],"last_wipe":"a","next_wipe":"b"}}`, "data.characters_online"},
		{"camelCase key is not accepted", `{"data":{"status":"s","version":"1.0","charactersOnline":5,"announcements":[],"last_wipe":"a","next_wipe":"b"}}`, "data.characters_online"},
		{"null announcements", `{"data":{"status":"s","version":"1.0","characters_online":5,"announcements":null,"last_wipe":"a","next_wipe":"b"}}`, "data.announcements"},
		{"missing next_wipe", `{"data":{"status":"s","version":"1.0","characters_online":5,"announcements":[],"last_wipe":"a"}}`, "data.next_wipe"},
		{"announcement missing created_at", `{"data":{"status":"s","version":"1.0","characters_online":5,"announcements":[{"message":"m"},{"message":"n"}],"last_wipe":"a","next_wipe":"b"}}`, "data.announcements[0].created_at"},
		{"announcement missing message", `{"data":{"status":"s","version":"1.0","characters_online":5,"announcements":[{"message":"m","created_at":"c"},{"created_at":"d"}],"last_wipe":"a","next_wipe":"b"}}`, "data.announcements[1].message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := DecodeStatus([]byte(tc.raw))
			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
			assert.Equal(t, tc.path, decErr.Path)
			assert.Equal(t, domain.StatusInfo{}, info)
		})
	}
}

func TestDecodeStatusTypeMismatchNamesField(t *testing.T) {
	raw := `{"data":{"status":"s","version":"1.0","characters_online":"five","announcements":[],"last_wipe":"a","next_wipe":"b"}}`
	info, err := DecodeStatus([]byte(raw))

	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "data.characters_online", decErr.Path)
	assert.Contains(t, err.Error(), "characters_online")
	assert.Equal(t, domain.StatusInfo{}, info)
}
