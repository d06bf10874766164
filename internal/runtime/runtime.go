package runtime

import (
	"context"
	"errors"

	"github.com/karvel/ringd/internal/archive"
	cfgpkg "github.com/karvel/ringd/internal/config"
	"github.com/karvel/ringd/internal/metrics"
	"github.com/karvel/ringd/internal/store"
	pebblestore "github.com/karvel/ringd/internal/storage/pebble"
	logpkg "github.com/karvel/ringd/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Runtime wires the store, the optional archive collaborator, and config for
// a single daemon instance. The store is an explicit instance passed by
// handle to the servers; there is no process-wide singleton.
type Runtime struct {
	st     *store.Store
	arch   *archive.Archive
	db     *pebblestore.DB
	config cfgpkg.Config
	logger logpkg.Logger
}

// Open validates the config and constructs the engine and its collaborators.
func Open(opts Options) (*Runtime, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger()
	}

	rt := &Runtime{config: opts.Config, logger: logger}

	hooks := &meteredHooks{}
	if opts.Config.ArchiveEnabled {
		db, err := pebblestore.Open(pebblestore.Options{
			DataDir: opts.Config.DataDir,
			Fsync:   fsyncMode(opts.Config.Fsync),
		})
		if err != nil {
			return nil, err
		}
		arch, err := archive.Open(db, logger.With(logpkg.Component("archive")))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		rt.db = db
		rt.arch = arch
		hooks.next = arch
	}

	rt.st = store.Open(store.Options{
		Capacity:        opts.Config.Capacity,
		Delimiter:       opts.Config.DelimiterByte(),
		MaxPendingBytes: opts.Config.MaxPendingBytes,
		Hooks:           hooks,
	})
	hooks.rt = rt
	return rt, nil
}

// Store returns the engine instance.
func (r *Runtime) Store() *store.Store { return r.st }

// Archive returns the archive collaborator, or nil when archiving is off.
func (r *Runtime) Archive() *archive.Archive { return r.arch }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }

// Logger returns the runtime's base logger.
func (r *Runtime) Logger() logpkg.Logger { return r.logger }

// Close releases underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a guarded engine operation to confirm the store is
// responsive.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.st == nil {
		return errors.New("runtime: store not open")
	}
	_, err := r.st.TotalBytes(ctx)
	return err
}

// meteredHooks updates the Prometheus collectors and forwards to the archive
// when one is configured.
type meteredHooks struct {
	rt   *Runtime
	next interface {
		OnAppend([]byte)
		OnEvict([]byte)
	}
}

func (h *meteredHooks) OnAppend(rec []byte) {
	metrics.RecordsAppended.Inc()
	h.refreshGauges()
	if h.next != nil {
		h.next.OnAppend(rec)
		metrics.ArchivedRecords.Inc()
	}
}

func (h *meteredHooks) OnEvict(rec []byte) {
	metrics.RecordsEvicted.Inc()
	h.refreshGauges()
	if h.next != nil {
		h.next.OnEvict(rec)
	}
}

func (h *meteredHooks) refreshGauges() {
	if h.rt == nil || h.rt.st == nil {
		return
	}
	ctx := context.Background()
	if n, err := h.rt.st.LiveCount(ctx); err == nil {
		metrics.LiveRecords.Set(float64(n))
	}
	if n, err := h.rt.st.TotalBytes(ctx); err == nil {
		metrics.LiveBytes.Set(float64(n))
	}
}

func fsyncMode(s string) pebblestore.FsyncMode {
	switch s {
	case "never":
		return pebblestore.FsyncModeNever
	case "interval":
		return pebblestore.FsyncModeInterval
	default:
		return pebblestore.FsyncModeAlways
	}
}
