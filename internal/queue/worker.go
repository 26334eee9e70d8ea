package queue

import (
	"context"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Handler processes one delivery body.
type Handler func(ctx context.Context, body []byte) error

// Worker feeds deliveries to Handler one at a time. Each delivery is
// attempted once: acked on success, nacked without requeue on failure.
type Worker struct {
	Deliveries <-chan amqp.Delivery
	Handler    Handler
	Logger     *zap.Logger
}

// Run blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-w.Deliveries:
			if !ok {
				w.Logger.Warn("delivery channel closed")
				return nil
			}
			w.process(ctx, d)
		}
	}
}

func (w *Worker) process(ctx context.Context, d amqp.Delivery) {
	if err := w.Handler(ctx, d.Body); err != nil {
		w.Logger.Error("failed to process delivery",
			zap.Uint64("delivery_tag", d.DeliveryTag),
			zap.Error(err),
		)
		if nackErr := d.Nack(false, false); nackErr != nil {
			w.Logger.Error("nack failed", zap.Error(nackErr))
		}
		return
	}
	if err := d.Ack(false); err != nil {
		w.Logger.Error("ack failed", zap.Error(err))
	}
}
