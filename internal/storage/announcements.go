package storage

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/samvad-hq/artifacts-client/internal/domain"
)

// AnnouncementID derives a stable key from the announcement timestamp and text.
func AnnouncementID(a domain.Announcement) string {
	sum := sha1.Sum([]byte(a.CreatedAt + "\x00" + a.Message))
	return hex.EncodeToString(sum[:])
}

// MarkNew returns the announcements the store has not seen yet and marks
// them. Lookup failures count as unseen so nothing is silently dropped; the
// joined error reports them.
func MarkNew(store Store, anns []domain.Announcement) ([]domain.Announcement, error) {
	if store == nil {
		return anns, nil
	}

	var (
		fresh []domain.Announcement
		errs  []error
	)
	for _, a := range anns {
		id := AnnouncementID(a)
		seen, err := store.SeenAnnouncement(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("lookup announcement %s: %w", id, err))
		}
		if seen {
			continue
		}
		fresh = append(fresh, a)
		if err := store.MarkAnnouncement(id); err != nil {
			errs = append(errs, fmt.Errorf("mark announcement %s: %w", id, err))
		}
	}
	return fresh, errors.Join(errs...)
}
