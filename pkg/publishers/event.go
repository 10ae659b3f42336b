package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/artifacts-client/internal/domain"
)

// Event is the status report published downstream after a successful status call.
type Event struct {
	ID               string                `json:"id"`
	Status           string                `json:"status"`
	Version          string                `json:"version"`
	CharactersOnline int                   `json:"characters_online"`
	NewAnnouncements []domain.Announcement `json:"new_announcements"`
	LastWipe         string                `json:"last_wipe"`
	NextWipe         string                `json:"next_wipe"`
	CollectedAt      time.Time             `json:"collected_at"`
}

// NewEvent builds a report from a decoded status and the announcements not
// reported before.
func NewEvent(info domain.StatusInfo, fresh []domain.Announcement) Event {
	if fresh == nil {
		fresh = []domain.Announcement{}
	}
	return Event{
		ID:               uuid.NewString(),
		Status:           info.Status,
		Version:          info.Version,
		CharactersOnline: info.CharactersOnline,
		NewAnnouncements: fresh,
		LastWipe:         info.LastWipe,
		NextWipe:         info.NextWipe,
		CollectedAt:      time.Now().UTC(),
	}
}

// attributes are the routing attributes attached by queue/topic sinks.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"event_id":      e.ID,
		"server_status": e.Status,
		"version":       e.Version,
	}
}
