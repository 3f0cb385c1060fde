package db

import (
	"context"

	"go.uber.org/zap"
)

// watch emits load's result now and again after every change signal, until
// ctx is cancelled. Failed loads are logged and skipped.
func watch[T any](ctx context.Context, n *Notifier, log *zap.Logger, load func(context.Context) (T, error)) <-chan T {
	out := make(chan T)
	signals, unsubscribe := n.Subscribe()

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			value, err := load(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("watch reload failed", zap.Error(err))
			} else {
				select {
				case out <- value:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
