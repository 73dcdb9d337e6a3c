package services

import (
	"context"

	"asset-desk/pkg/eventbus"
)

// EventPublisher - шина событий; *eventbus.Bus подходит напрямую.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}
