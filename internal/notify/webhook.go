package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/ghostchess/pkg/coredto"
)

const queueSize = 256

// Webhook pushes session events to a collaborator endpoint as JSON POSTs.
// Events are queued and delivered by a single worker; a full queue drops
// the newest event rather than blocking the game loop.
type Webhook struct {
	url    string
	http   *fasthttp.Client
	logger *zap.Logger

	timeout  time.Duration
	retryMax int

	queue    chan coredto.Event
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type Option func(*Webhook)

func WithTimeout(d time.Duration) Option {
	return func(w *Webhook) { w.timeout = d }
}

func WithRetry(max int) Option {
	return func(w *Webhook) { w.retryMax = max }
}

// NewWebhook builds a notifier for the given endpoint URL.
func NewWebhook(url string, logger *zap.Logger, opts ...Option) *Webhook {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Webhook{
		url:      strings.TrimSpace(url),
		http:     &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 8},
		logger:   logger,
		timeout:  5 * time.Second,
		retryMax: 3,
		queue:    make(chan coredto.Event, queueSize),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the delivery worker.
func (w *Webhook) Start() {
	w.wg.Add(1)
	go w.run()
}

// Publish enqueues an event for delivery. Never blocks.
func (w *Webhook) Publish(ev coredto.Event) {
	select {
	case w.queue <- ev:
	default:
		w.logger.Warn("webhook queue full, dropping event", zap.String("type", string(ev.Type)))
	}
}

// Close stops the worker after the queue drains.
func (w *Webhook) Close() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
}

func (w *Webhook) run() {
	defer w.wg.Done()
	for {
		select {
		case ev := <-w.queue:
			w.deliver(ev)
		case <-w.stopCh:
			for {
				select {
				case ev := <-w.queue:
					w.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (w *Webhook) deliver(ev coredto.Event) {
	var lastErr error
	for attempt := 0; attempt <= w.retryMax; attempt++ {
		if attempt > 0 {
			time.Sleep(backoffDuration(attempt))
		}
		if err := w.post(ev); err != nil {
			lastErr = err
			continue
		}
		return
	}
	w.logger.Warn("webhook delivery failed",
		zap.String("type", string(ev.Type)),
		zap.Error(lastErr),
	)
}

func (w *Webhook) post(ev coredto.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(w.url)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	if err := w.http.DoTimeout(req, resp, w.timeout); err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	if code := resp.StatusCode(); code >= 300 {
		return fmt.Errorf("post event: unexpected status %d", code)
	}
	return nil
}

func backoffDuration(attempt int) time.Duration {
	d := time.Duration(attempt) * 500 * time.Millisecond
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
