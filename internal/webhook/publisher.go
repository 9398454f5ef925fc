package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smartbash/brgy_dispatch/internal/models"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	dispatchQueueKey = "dispatch_events"
)

// DispatchEvent describes one completed dispatch call
type DispatchEvent struct {
	ReportID     int64                  `json:"report_id"`
	IncidentType models.IncidentType    `json:"incident_type"`
	Barangay     string                 `json:"barangay"`
	ClusterSize  int                    `json:"cluster_size"`
	Urgency      models.UrgencyLevel    `json:"urgency"`
	Forced       bool                   `json:"forced"`
	Summary      models.DispatchSummary `json:"summary"`
	Timestamp    time.Time              `json:"timestamp"`
}

// EventPublisher publishes dispatch events
type EventPublisher interface {
	Publish(ctx context.Context, event DispatchEvent) error
}

// RedisEventPublisher queues events in a Redis list
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher creates a new RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish pushes the event to the left end of the queue
func (p *RedisEventPublisher) Publish(ctx context.Context, event DispatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, dispatchQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish dispatch event to Redis: %w", err)
	}
	return nil
}

// NopPublisher drops every event. Used when no webhook is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, DispatchEvent) error { return nil }
