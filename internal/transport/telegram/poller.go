package telegram

import (
	"context"
	"sync"

	"github.com/NikitaDmitryuk/telegram-media-downloader/internal/logutils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"
)

const UpdateTimeout = 60

type Handler func(ctx context.Context, update *tgbotapi.Update)

// Poller hands updates to a handler on separate goroutines, at most
// maxConcurrent at a time.
type Poller struct {
	sem    *semaphore.Weighted
	handle Handler
	wg     sync.WaitGroup
}

func NewPoller(maxConcurrent int, handle Handler) *Poller {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Poller{
		sem:    semaphore.NewWeighted(int64(maxConcurrent)),
		handle: handle,
	}
}

// NewUpdateConfig is the long-polling request used by the bot.
func NewUpdateConfig() tgbotapi.UpdateConfig {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = UpdateTimeout
	u.AllowedUpdates = []string{"message", "callback_query"}
	return u
}

// Run dispatches updates until ctx is canceled or the channel is closed.
// Handlers that already started keep running; use Wait to drain them.
func (p *Poller) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	handlerCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			logutils.Log.Info("Stopping update processing")
			return
		case update, ok := <-updates:
			if !ok {
				logutils.Log.Info("Update channel closed")
				return
			}
			if err := p.sem.Acquire(ctx, 1); err != nil {
				logutils.Log.Info("Stopping update processing")
				return
			}
			p.wg.Add(1)
			go func(update tgbotapi.Update) {
				defer p.wg.Done()
				defer p.sem.Release(1)
				p.handle(handlerCtx, &update)
			}(update)
		}
	}
}

// Wait blocks until in-flight handlers finish or ctx is done.
func (p *Poller) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
