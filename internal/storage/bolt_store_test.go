package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/samvad-hq/artifacts-client/internal/domain"
)

func TestBoltStoreMarksAndExpiresAnnouncements(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		EntryTTL:        1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(filepath.Join(dir, "nested", "announcements.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	seen, err := store.SeenAnnouncement("id1")
	if err != nil || seen {
		t.Fatalf("expected unseen announcement, seen=%v err=%v", seen, err)
	}

	if err := store.MarkAnnouncement("id1"); err != nil {
		t.Fatalf("MarkAnnouncement: %v", err)
	}

	seen, err = store.SeenAnnouncement("id1")
	if err != nil || !seen {
		t.Fatalf("expected announcement marked as seen, got seen=%v err=%v", seen, err)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	seen, err = store.SeenAnnouncement("id1")
	if err != nil {
		t.Fatalf("SeenAnnouncement after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkAnnouncement("x"); err != nil {
		t.Fatalf("noop store MarkAnnouncement: %v", err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
	if _, err := NewStore("bbolt", " ", Options{}); err == nil {
		t.Fatalf("expected error for bbolt without path")
	}
}

func TestMarkNewReportsOnlyUnseen(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "a.db"), Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	first := []domain.Announcement{
		{Message: "maintenance", CreatedAt: "2024-01-01"},
		{Message: "season 2", CreatedAt: "2024-02-01"},
	}
	fresh, err := MarkNew(store, first)
	if err != nil {
		t.Fatalf("MarkNew: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh announcements, got %d", len(fresh))
	}

	second := append(first, domain.Announcement{Message: "patch", CreatedAt: "2024-03-01"})
	fresh, err = MarkNew(store, second)
	if err != nil {
		t.Fatalf("MarkNew: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Message != "patch" {
		t.Fatalf("expected only the patch announcement, got %#v", fresh)
	}
}

type failingStore struct{ noopStore }

func (failingStore) SeenAnnouncement(string) (bool, error) { return false, errors.New("lookup failed") }

func TestMarkNewKeepsAnnouncementsOnLookupError(t *testing.T) {
	anns := []domain.Announcement{{Message: "m", CreatedAt: "c"}}
	fresh, err := MarkNew(failingStore{}, anns)
	if err == nil {
		t.Fatalf("expected joined lookup error")
	}
	if len(fresh) != 1 {
		t.Fatalf("announcement should be kept on lookup failure, got %d", len(fresh))
	}
}

func TestAnnouncementIDDistinguishesFields(t *testing.T) {
	a := AnnouncementID(domain.Announcement{Message: "ab", CreatedAt: "c"})
	b := AnnouncementID(domain.Announcement{Message: "b", CreatedAt: "ca"})
	if a == b {
		t.Fatalf("ids should differ when fields shift")
	}
}
