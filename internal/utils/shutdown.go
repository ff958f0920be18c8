package utils

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 15 * time.Second

type shutdownTask struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs registered cleanup tasks, last registered first, once the process is told to stop.
type ShutdownManager struct {
	cancelFunc context.CancelFunc
	tasks      []shutdownTask
	mu         sync.Mutex
	signals    chan os.Signal
}

func NewShutdownManager(ctx context.Context) (context.Context, *ShutdownManager) {
	ctx, cancel := context.WithCancel(ctx)
	manager := &ShutdownManager{
		cancelFunc: cancel,
		signals:    make(chan os.Signal, 1),
	}
	return ctx, manager
}

func (sm *ShutdownManager) Register(name string, task func(context.Context) error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.tasks = append(sm.tasks, shutdownTask{name: name, fn: task})
}

// Wait blocks until SIGINT/SIGTERM arrives, then runs the shutdown tasks.
func (sm *ShutdownManager) Wait() {
	signal.Notify(sm.signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sm.signals
	signal.Stop(sm.signals)

	log.Info().Str("signal", sig.String()).Msg("[SHUTDOWN] received signal")
	sm.Shutdown()
}

// Shutdown cancels the root context and runs every task within shutdownTimeout.
func (sm *ShutdownManager) Shutdown() {
	sm.cancelFunc()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	for i := len(sm.tasks) - 1; i >= 0; i-- {
		task := sm.tasks[i]
		log.Info().Str("task", task.name).Msg("[SHUTDOWN] running")
		if err := task.fn(ctx); err != nil {
			log.Error().Err(err).Str("task", task.name).Msg("[SHUTDOWN] task failed")
		}
	}
	sm.tasks = nil

	log.Info().Msg("[SHUTDOWN] graceful shutdown complete")
}
