package serverrun

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cfgpkg "github.com/karvel/ringd/internal/config"
	"github.com/karvel/ringd/internal/runtime"
	httpserver "github.com/karvel/ringd/internal/server/http"
	tcpserver "github.com/karvel/ringd/internal/server/tcp"
	logpkg "github.com/karvel/ringd/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	Config cfgpkg.Config
}

// Run starts the TCP daemon and HTTP control plane and blocks until ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	// Layer a local signal context over the provided one so callers that
	// pass a plain context still get clean SIGTERM shutdown.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build process-wide logger; env overrides win, config supplies the
	// defaults. ApplyConfig falls back to info/text on bad values.
	lcfg := &logpkg.Config{
		Level:  getenvDefault("RINGD_LOG_LEVEL", opts.Config.LogLevel),
		Format: getenvDefault("RINGD_LOG_FORMAT", opts.Config.LogFormat),
	}
	procLogger, _ := logpkg.ApplyConfig(lcfg)

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	rt, err := runtime.Open(runtime.Options{Config: opts.Config, Logger: procLogger})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting ringd server",
		logpkg.Str("tcp", opts.Config.TCPAddr),
		logpkg.Int("capacity", rt.Store().Capacity()),
		logpkg.Str("http", opts.Config.HTTPAddr),
		logpkg.Bool("archive", opts.Config.ArchiveEnabled),
		logpkg.Str("level", lcfg.Level),
		logpkg.Str("format", lcfg.Format),
	)

	tsrv := tcpserver.New(rt, procLogger.With(logpkg.Component("tcp")))
	hsrv := httpserver.New(rt, procLogger.With(logpkg.Component("http")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tsrv.ListenAndServe(sctx, opts.Config.TCPAddr); err != nil && sctx.Err() == nil {
			log.Printf("tcp error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.Config.HTTPAddr); err != nil && sctx.Err() == nil {
			log.Printf("http error: %v", err)
		}
	}()

	<-sctx.Done()
	// Close the listeners before the runtime/DB to avoid races with
	// in-flight handlers.
	tsrv.Close()
	hsrv.Close()
	wg.Wait()
	return nil
}
