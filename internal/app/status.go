package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samvad-hq/artifacts-client/internal/config"
	"github.com/samvad-hq/artifacts-client/internal/domain"
	"github.com/samvad-hq/artifacts-client/internal/logger"
	"github.com/samvad-hq/artifacts-client/internal/storage"
	"github.com/samvad-hq/artifacts-client/pkg/artifacts"
	"github.com/samvad-hq/artifacts-client/pkg/httpclient"
	"github.com/samvad-hq/artifacts-client/pkg/publishers"
)

// StatusRunner performs one synchronous status call and reports the outcome.
// It owns the announcement store and the publisher fanout and releases both
// when Run returns.
type StatusRunner struct {
	client *artifacts.Client
	store  storage.Store
	fanout *publishers.Fanout
	log    logger.Logger
	out    io.Writer
}

// NewStatusRunner builds the client, store and publishers from config.
func NewStatusRunner(ctx context.Context, cfg *config.Config, log logger.Logger) (*StatusRunner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	builder, err := artifacts.NewRequestBuilder(cfg.BaseURL, artifacts.Credential(cfg.Token))
	if err != nil {
		return nil, fmt.Errorf("init request builder: %w", err)
	}
	client := artifacts.New(builder, httpclient.NewRestyClient(cfg.RequestTimeout), log)

	fanout, err := loadFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	storeOpts := storage.Options{
		EntryTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"entry_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return newStatusRunner(client, store, fanout, log, os.Stdout), nil
}

func newStatusRunner(client *artifacts.Client, store storage.Store, fanout *publishers.Fanout, log logger.Logger, out io.Writer) *StatusRunner {
	if store == nil {
		store, _ = storage.NewStore("none", "", storage.Options{})
	}
	return &StatusRunner{
		client: client,
		store:  store,
		fanout: fanout,
		log:    logger.Ensure(log),
		out:    out,
	}
}

// loadFanout builds publishers from path. An empty path disables publishing.
func loadFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(path) == "" {
		return publishers.NewFanout(nil), nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubs), nil
}

// Run prints the start marker, performs the status call, prints the outcome
// and the end marker. Transport and decode failures are reported, not
// returned.
func (r *StatusRunner) Run(ctx context.Context) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("status runner is not initialized")
	}
	defer r.close()

	fmt.Fprintln(r.out, "Starting task")
	defer fmt.Fprintln(r.out, "Ending task")

	res, err := r.client.Status(ctx)

	var (
		trErr  *artifacts.TransportError
		decErr *artifacts.DecodeError
	)
	switch {
	case errors.As(err, &trErr):
		fmt.Fprintf(r.out, "Error with %v\n", trErr)
		r.log.ErrorObj("status call failed", "error", trErr.Error())
		return nil
	case errors.As(err, &decErr):
		printMeta(r.out, res.Meta)
		fmt.Fprintf(r.out, "Error decoding %v\n", decErr)
		r.log.ErrorObj("status decode failed", "decode_error", map[string]any{
			"path":        decErr.Path,
			"error":       decErr.Error(),
			"status_code": res.Meta.StatusCode,
		})
		return nil
	case err != nil:
		return fmt.Errorf("status call: %w", err)
	}

	printMeta(r.out, res.Meta)

	fresh, err := storage.MarkNew(r.store, res.Status.Announcements)
	if err != nil {
		r.log.WarnObj("announcement store update failed", "error", err.Error())
	}
	printStatus(r.out, res.Status, fresh)

	r.publish(ctx, res.Status, fresh)
	return nil
}

func (r *StatusRunner) publish(ctx context.Context, info domain.StatusInfo, fresh []domain.Announcement) {
	if r.fanout.Size() == 0 {
		return
	}
	evt := publishers.NewEvent(info, fresh)
	n, err := r.fanout.Publish(ctx, evt)
	if err != nil {
		r.log.ErrorObj("status report publish failed", "publish_error", map[string]any{
			"event_id":   evt.ID,
			"successful": n,
			"error":      err.Error(),
		})
		return
	}
	r.log.InfoObj("status report published", "publish_meta", map[string]any{
		"event_id":   evt.ID,
		"publishers": n,
	})
}

// close releases the store and publishers, logging any errors encountered.
func (r *StatusRunner) close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("storage close failed", "error", err.Error())
		}
	}
	if err := r.fanout.Close(); err != nil {
		r.log.ErrorObj("publishers close failed", "error", err.Error())
	}
}
