package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/nba_api/pkg/logging"
)

const (
	TopicUsers   = "user_events"
	TopicRoles   = "role_events"
	TopicPlayers = "player_events"
	TopicTeams   = "team_events"
)

var Topics = []string{TopicUsers, TopicRoles, TopicPlayers, TopicTeams}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// publish delivers a domain event after the write has committed. Delivery
// failures are logged and never fail the operation.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	event["occurred_at"] = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
