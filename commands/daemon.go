package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/padraicb/go-timesheet-sync/internal/config"
	"github.com/padraicb/go-timesheet-sync/internal/util"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run sync on the configured cadence until interrupted",
	Long: `daemon registers a recurring sync job on the configured cron cadence and
keeps running until SIGINT or SIGTERM. The job runs in singleton mode so
invocations never overlap. When --env-file is given the file is watched and
configuration changes re-register the job.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

// stopper is the part of a scheduler the replacement and shutdown paths
// need.
type stopper interface {
	Shutdown() error
}

// schedulerHandle holds the active scheduler. Replacement happens on the
// config-watch goroutine while shutdown happens on the signal path, so
// both go through the mutex; once shutdown has run, a late reload starts
// nothing.
type schedulerHandle struct {
	mu     sync.Mutex
	active stopper
	closed bool
}

// swap stops the active scheduler, then installs the one start returns.
func (h *schedulerHandle) swap(start func() (stopper, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	if h.active != nil {
		if err := h.active.Shutdown(); err != nil {
			util.LogWarnf("Failed to stop previous scheduler: %v", err)
		}
		h.active = nil
	}
	next, err := start()
	if err != nil {
		return err
	}
	h.active = next
	return nil
}

// shutdown stops the active scheduler and pins the handle closed.
func (h *schedulerHandle) shutdown() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.active == nil {
		return nil
	}
	err := h.active.Shutdown()
	h.active = nil
	return err
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handle := &schedulerHandle{}
	if err := handle.swap(schedulerStarter(ctx, cfg)); err != nil {
		return err
	}

	if envFile != "" {
		watcher, err := watchConfig(ctx, envFile, func(next *config.Config) {
			if err := handle.swap(schedulerStarter(ctx, next)); err != nil {
				util.LogErrorf("Failed to re-register sync job: %v", err)
			}
		})
		if err != nil {
			util.LogWarnf("Config watching disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	util.LogInfo("Shutting down daemon")
	cancel()
	return handle.shutdown()
}

func schedulerStarter(ctx context.Context, cfg *config.Config) func() (stopper, error) {
	return func() (stopper, error) {
		scheduler, err := startScheduler(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return scheduler, nil
	}
}

// startScheduler registers the recurring sync job in singleton mode so a
// long run is never overlapped by the next trigger.
func startScheduler(ctx context.Context, cfg *config.Config) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(cfg.Cron, false),
		gocron.NewTask(func() {
			rep := runOnce(ctx, cfg)
			if rep.Err != nil {
				util.LogErrorf("Scheduled sync run failed: %v", rep.Err)
			}
		}),
		gocron.WithName("timesheet-sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		scheduler.Shutdown()
		return nil, err
	}

	scheduler.Start()
	util.LogInfof("Sync job registered with cadence %q", cfg.Cron)
	return scheduler, nil
}

// watchConfig reloads the env file on change and hands valid configs to
// apply. Invalid reloads are logged and the previous config stays active.
// The watch is on the containing directory: editors save by writing a
// sibling file and renaming it over the target, which ends a direct file
// watch.
func watchConfig(ctx context.Context, path string, apply func(*config.Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				util.LogInfof("Config file %s changed, reloading", path)
				next, err := config.Reload(path)
				if err != nil {
					util.LogErrorf("Config reload rejected: %v", err)
					continue
				}
				apply(next)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				util.LogWarnf("Config watcher error: %v", err)
			}
		}
	}()

	util.LogInfof("Watching %s for configuration changes", path)
	return watcher, nil
}
