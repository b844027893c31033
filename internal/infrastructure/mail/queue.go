package mail

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/sparkconnect/directory/internal/api/metrics"
	"github.com/sparkconnect/directory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Queue delivers mail asynchronously through a fixed set of workers, sharded
// by recipient so messages to the same address are sent in submission order.
type Queue struct {
	workers []chan ports.MailMessage
	sender  ports.Mailer
	log     zerolog.Logger
}

var _ ports.Mailer = (*Queue)(nil)

// NewQueue creates a Queue with numWorkers sharded workers in front of sender.
// If numWorkers <= 0, defaultWorkers is used.
func NewQueue(numWorkers int, sender ports.Mailer, log zerolog.Logger) *Queue {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	q := &Queue{
		workers: make([]chan ports.MailMessage, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range q.workers {
		q.workers[i] = make(chan ports.MailMessage, channelBuffer)
	}
	return q
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	for i, ch := range q.workers {
		go q.runWorker(ctx, i, ch)
	}
}

// Send enqueues the message for delivery. The call is non-blocking up to
// channelBuffer capacity per worker.
func (q *Queue) Send(_ context.Context, msg ports.MailMessage) error {
	i := q.shardIndex(msg.To)
	q.workers[i] <- msg
	metrics.MailQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(q.workers[i])))
	return nil
}

// shardIndex maps a recipient deterministically to a worker index.
func (q *Queue) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(q.workers)
}

func (q *Queue) runWorker(ctx context.Context, id int, ch <-chan ports.MailMessage) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.MailQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := q.sender.Send(ctx, msg); err != nil {
				q.log.Error().Err(err).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
			}
		}
	}
}
