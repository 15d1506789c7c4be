package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/motif"
	"github.com/gogpu/motif/api"
	"github.com/gogpu/motif/config"
	"github.com/gogpu/motif/worker"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the HTTP API.
type Serve struct {
	Config string `short:"c" desc:"TOML or YAML config file"`
	Addr   string `short:"a" desc:"Listen address, overrides the config"`
}

func (cmd *Serve) Run() error {
	cfg := config.Default()
	if cmd.Config != "" {
		var err error
		if cfg, err = config.Load(cmd.Config); err != nil {
			return err
		}
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}

	log, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	motif.SetLogger(log)

	runner, err := newRunner(cfg.Jobs)
	if err != nil {
		return err
	}
	pool, err := worker.NewPool(runner,
		worker.WithMaxConcurrent(cfg.Jobs.MaxConcurrent),
		worker.WithTimeout(cfg.Jobs.Timeout.Std()),
		worker.WithCache(cfg.Jobs.CacheEntries))
	if err != nil {
		return err
	}
	handler, err := api.NewServer(pool,
		api.WithAllowOrigin(cfg.Server.AllowOrigin),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("serve: listening",
			"addr", cfg.Server.Addr,
			"isolation", cfg.Jobs.Isolation,
			"max_concurrent", pool.Limit(),
			"timeout", pool.Timeout(),
			"cache_entries", cfg.Jobs.CacheEntries)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRunner(jobs config.JobsConfig) (worker.Runner, error) {
	switch jobs.Isolation {
	case config.IsolationInProcess:
		return worker.InProcess{}, nil
	case config.IsolationSubprocess:
		command := jobs.WorkerCommand
		if command == "" {
			exe, err := os.Executable()
			if err != nil {
				return nil, fmt.Errorf("locate worker executable: %w", err)
			}
			command = exe
		}
		return &worker.Subprocess{
			Command: command,
			Args:    jobs.WorkerArgs,
			TempDir: jobs.TempDir,
		}, nil
	default:
		return nil, fmt.Errorf("unknown isolation %q", jobs.Isolation)
	}
}
