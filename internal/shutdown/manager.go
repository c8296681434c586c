package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
)

// Service is something that must be stopped before the process exits.
type Service interface {
	Name() string
	Shutdown(ctx context.Context) error
}

// Manager stops registered services in reverse registration order.
type Manager struct {
	services []Service
	timeout  time.Duration
	mu       sync.Mutex
}

func NewManager(timeout time.Duration) *Manager {
	return &Manager{timeout: timeout}
}

func (m *Manager) Register(service Service) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.services = append(m.services, service)
	logutils.Log.WithField("service", service.Name()).Debug("Service registered for graceful shutdown")
}

// NotifyContext returns a context canceled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (m *Manager) Shutdown() error {
	logutils.Log.Info("Starting graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	services := make([]Service, len(m.services))
	copy(services, m.services)
	m.mu.Unlock()

	var failed int
	for i := len(services) - 1; i >= 0; i-- {
		svc := services[i]
		if ctx.Err() != nil {
			logutils.Log.Warn("Shutdown timeout exceeded, forcing shutdown")
			return fmt.Errorf("shutdown timeout exceeded")
		}
		logutils.Log.WithField("service", svc.Name()).Info("Shutting down service")
		if err := svc.Shutdown(ctx); err != nil {
			failed++
			logutils.Log.WithError(err).WithField("service", svc.Name()).Error("Error during service shutdown")
		}
	}

	if failed > 0 {
		return fmt.Errorf("shutdown completed with %d errors", failed)
	}
	logutils.Log.Info("Graceful shutdown completed successfully")
	return nil
}

// Func adapts a plain function to Service.
type Func struct {
	ServiceName string
	Fn          func(ctx context.Context) error
}

func (f Func) Name() string { return f.ServiceName }

func (f Func) Shutdown(ctx context.Context) error { return f.Fn(ctx) }
