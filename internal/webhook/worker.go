package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/config"
)

const signatureHeader = "X-Webhook-Signature"

// Worker drains the dispatch event queue and delivers events to WEBHOOK_URL
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	httpClient  *resty.Client
	popTimeout  time.Duration
}

// NewWorker creates a new Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: resty.New().
			SetTimeout(cfg.WebhookTimeout).
			SetHeader("Content-Type", "application/json"),
		popTimeout: 5 * time.Second,
	}
}

// Start runs the delivery loop in a goroutine until ctx is cancelled
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting dispatch webhook worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping dispatch webhook worker.")
				return
			default:
			}
			if _, err := w.ProcessNext(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop dispatch event from Redis")
				sleep(ctx, w.cfg.WebhookTimeout)
			}
		}
	}()
}

// ProcessNext waits for one event and delivers it. It reports false when the
// queue stayed empty for the pop timeout.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	// BRPOP takes from the right end, so events are delivered in publish order
	result, err := w.redisClient.BRPop(ctx, w.popTimeout, dispatchQueueKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	payload := result[1]
	var event DispatchEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal dispatch event from Redis")
		return true, nil
	}

	if err := w.deliver(ctx, event, payload); err != nil {
		w.logger.WithError(err).WithField("report_id", event.ReportID).Error("Dispatch webhook delivery failed")
	}
	return true, nil
}

func (w *Worker) deliver(ctx context.Context, event DispatchEvent, rawPayload string) error {
	log := w.logger.WithFields(logrus.Fields{
		"report_id":     event.ReportID,
		"incident_type": event.IncidentType,
	})

	if w.cfg.WebhookURL == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return nil
	}

	maxRetries := w.cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	delay := w.cfg.WebhookBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			log.Warnf("Retrying webhook in %v. Retries left: %d", delay, maxRetries-i)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2
		}

		req := w.httpClient.R().
			SetContext(ctx).
			SetBody(rawPayload)
		if w.cfg.WebhookSecret != "" {
			req.SetHeader(signatureHeader, Sign(rawPayload, w.cfg.WebhookSecret))
		}

		resp, err := req.Post(w.cfg.WebhookURL)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.IsSuccess() {
			log.Info("Webhook delivered successfully.")
			return nil
		}
		lastErr = fmt.Errorf("webhook responded with status %d", resp.StatusCode())
	}

	return fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

// Sign returns the hex HMAC-SHA256 of data keyed with secret
func Sign(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
