package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/artifacts-client/internal/domain"
	"github.com/samvad-hq/artifacts-client/internal/storage"
	"github.com/samvad-hq/artifacts-client/pkg/artifacts"
)

func printMeta(w io.Writer, meta artifacts.ResponseMeta) {
	fmt.Fprintf(w, "Response %s %s (%s)\n", meta.Proto, meta.Status, meta.Duration)
}

// printStatus writes the decoded record. Announcements in fresh are tagged
// as new.
func printStatus(w io.Writer, info domain.StatusInfo, fresh []domain.Announcement) {
	isNew := make(map[string]bool, len(fresh))
	for _, a := range fresh {
		isNew[storage.AnnouncementID(a)] = true
	}

	fmt.Fprintf(w, "Status %s version=%s characters_online=%d last_wipe=%s next_wipe=%s\n",
		info.Status, info.Version, info.CharactersOnline, info.LastWipe, info.NextWipe)
	for _, a := range info.Announcements {
		tag := ""
		if isNew[storage.AnnouncementID(a)] {
			tag = " (new)"
		}
		fmt.Fprintf(w, "  [%s] %s%s\n", a.CreatedAt, plainText(a.Message), tag)
	}
}

// plainText strips markup from announcement messages and collapses whitespace.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
