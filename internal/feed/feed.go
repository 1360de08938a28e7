// Package feed consumes a live stream of chat messages and distributes
// processing outcomes to subscribers.
package feed

import (
	"bufio"
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"signal-trader/internal/trading"
)

// Config holds configuration for the message feed.
type Config struct {
	// BufferSize is the size of the internal message channel buffer.
	BufferSize int
	// SubscriberBufferSize is the size of each subscriber's channel buffer.
	SubscriberBufferSize int
}

// DefaultConfig returns the default feed configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:           256,
		SubscriberBufferSize: 16,
	}
}

// Event is the outcome of processing one feed message.
type Event struct {
	// Message is the raw chat message text.
	Message string
	// Result is the processing outcome; nil only when Err is set.
	Result *trading.Result
	// Err is set when processing failed.
	Err error
	// At is when the message was processed.
	At time.Time
}

// Feed runs incoming chat messages through a processor and fans the
// outcomes out to subscribers. Sends to subscribers never block; a slow
// subscriber loses events rather than stalling the feed.
type Feed struct {
	config    Config
	processor *trading.Processor
	logger    zerolog.Logger

	mu          sync.RWMutex
	subscribers []*subscriber
	started     bool

	msgChan chan string
	done    chan struct{}

	metricsMu sync.RWMutex
	received  uint64
	processed uint64
	signals   uint64
	dropped   uint64
}

type subscriber struct {
	ch      chan Event
	dropped int
}

// New creates a feed with default configuration.
func New(processor *trading.Processor, logger zerolog.Logger) *Feed {
	return NewWithConfig(DefaultConfig(), processor, logger)
}

// NewWithConfig creates a feed with custom configuration.
func NewWithConfig(config Config, processor *trading.Processor, logger zerolog.Logger) *Feed {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.SubscriberBufferSize <= 0 {
		config.SubscriberBufferSize = DefaultConfig().SubscriberBufferSize
	}
	return &Feed{
		config:    config,
		processor: processor,
		logger:    logger,
		msgChan:   make(chan string, config.BufferSize),
		done:      make(chan struct{}),
	}
}

// Start begins the feed's processing loop.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.mu.Unlock()

	go f.processLoop(ctx)
}

func (f *Feed) processLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.done:
			return
		case msg := <-f.msgChan:
			f.handle(ctx, msg)
		}
	}
}

func (f *Feed) handle(ctx context.Context, msg string) {
	result, err := f.processor.ProcessMessage(ctx, msg)
	event := Event{Message: msg, Result: result, Err: err, At: time.Now()}

	f.metricsMu.Lock()
	f.processed++
	if err == nil && result.Signal != nil {
		f.signals++
	}
	f.metricsMu.Unlock()

	if err != nil {
		f.logger.Error().Err(err).Msg("Failed to process feed message")
	}
	f.broadcast(event)
}

// Stop stops the feed and closes all subscriber channels.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started {
		return
	}
	close(f.done)
	f.started = false

	for _, sub := range f.subscribers {
		close(sub.ch)
	}
	f.subscribers = nil
}

// Publish queues a message for processing. Non-blocking: when the
// internal buffer is full the message is dropped and counted.
func (f *Feed) Publish(msg string) bool {
	select {
	case f.msgChan <- msg:
		f.metricsMu.Lock()
		f.received++
		f.metricsMu.Unlock()
		return true
	default:
		f.metricsMu.Lock()
		f.dropped++
		f.metricsMu.Unlock()
		return false
	}
}

// Subscribe returns a channel receiving one event per processed message.
func (f *Feed) Subscribe() <-chan Event {
	sub := &subscriber{ch: make(chan Event, f.config.SubscriberBufferSize)}

	f.mu.Lock()
	f.subscribers = append(f.subscribers, sub)
	f.mu.Unlock()

	return sub.ch
}

// Unsubscribe removes a subscriber channel and closes it.
func (f *Feed) Unsubscribe(ch <-chan Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, sub := range f.subscribers {
		if sub.ch == ch {
			close(sub.ch)
			f.subscribers = append(f.subscribers[:i], f.subscribers[i+1:]...)
			break
		}
	}
}

func (f *Feed) broadcast(event Event) {
	f.mu.RLock()
	subs := make([]*subscriber, len(f.subscribers))
	copy(subs, f.subscribers)
	f.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
			// Skip slow consumers rather than blocking the feed.
			sub.dropped++
		}
	}
}

// ReadFrom publishes each line of r as a feed message until EOF or
// context cancellation. Blank lines are skipped.
func (f *Feed) ReadFrom(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !f.Publish(line) {
			f.logger.Warn().Msg("Feed buffer full, message dropped")
		}
	}
	return scanner.Err()
}

// Metrics contains feed counters.
type Metrics struct {
	Received  uint64
	Processed uint64
	Signals   uint64
	Dropped   uint64
}

// GetMetrics returns a snapshot of the feed counters.
func (f *Feed) GetMetrics() Metrics {
	f.metricsMu.RLock()
	defer f.metricsMu.RUnlock()
	return Metrics{
		Received:  f.received,
		Processed: f.processed,
		Signals:   f.signals,
		Dropped:   f.dropped,
	}
}

// IsStarted reports whether the feed loop is running.
func (f *Feed) IsStarted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.started
}
