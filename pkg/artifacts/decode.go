package artifacts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/samvad-hq/artifacts-client/internal/domain"
)

// envelope is the outer {"data": ...} wrapper of every API response.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// statusWire mirrors the wire schema. Pointers distinguish absent or null
// fields from zero values; the tags are the rename table.
type statusWire struct {
	Status           *string             `json:"status"`
	Version          *string             `json:"version"`
	CharactersOnline *int                `json:"characters_online"`
	Announcements    *[]announcementWire `json:"announcements"`
	LastWipe         *string             `json:"last_wipe"`
	NextWipe         *string             `json:"next_wipe"`
}

type announcementWire struct {
	Message   *string `json:"message"`
	CreatedAt *string `json:"created_at"`
}

// DecodeStatus maps a status response body onto domain.StatusInfo.
// Every field is required; on failure the zero StatusInfo is returned with
// a *DecodeError.
func DecodeStatus(raw []byte) (domain.StatusInfo, error) {
	data, err := unwrapEnvelope(raw)
	if err != nil {
		return domain.StatusInfo{}, err
	}

	var w statusWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.StatusInfo{}, wrapJSONError("data", err)
	}

	if err := w.validate(); err != nil {
		return domain.StatusInfo{}, err
	}

	anns := make([]domain.Announcement, len(*w.Announcements))
	for i, a := range *w.Announcements {
		anns[i] = domain.Announcement{Message: *a.Message, CreatedAt: *a.CreatedAt}
	}

	return domain.StatusInfo{
		Status:           *w.Status,
		Version:          *w.Version,
		CharactersOnline: *w.CharactersOnline,
		Announcements:    anns,
		LastWipe:         *w.LastWipe,
		NextWipe:         *w.NextWipe,
	}, nil
}

// unwrapEnvelope returns the raw "data" member.
func unwrapEnvelope(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, wrapJSONError("", err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, &DecodeError{Path: "data", Err: errMissingField}
	}
	return env.Data, nil
}

func (w statusWire) validate() error {
	required := []struct {
		path    string
		present bool
	}{
		{"data.status", w.Status != nil},
		{"data.version", w.Version != nil},
		{"data.characters_online", w.CharactersOnline != nil},
		{"data.announcements", w.Announcements != nil},
		{"data.last_wipe", w.LastWipe != nil},
		{"data.next_wipe", w.NextWipe != nil},
	}
	for _, f := range required {
		if !f.present {
			return &DecodeError{Path: f.path, Err: errMissingField}
		}
	}

	for i, a := range *w.Announcements {
		if a.Message == nil {
			return &DecodeError{Path: fmt.Sprintf("data.announcements[%d].message", i), Err: errMissingField}
		}
		if a.CreatedAt == nil {
			return &DecodeError{Path: fmt.Sprintf("data.announcements[%d].created_at", i), Err: errMissingField}
		}
	}
	return nil
}

// wrapJSONError converts encoding/json errors, keeping the field path when
// the decoder exposes one.
func wrapJSONError(prefix string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := prefix
		if typeErr.Field != "" {
			if path != "" {
				path += "."
			}
			path += typeErr.Field
		}
		return &DecodeError{
			Path: path,
			Err:  fmt.Errorf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}
	return &DecodeError{Path: prefix, Err: err}
}
