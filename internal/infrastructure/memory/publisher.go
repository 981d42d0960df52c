package memory

import (
	"context"

	"github.com/smarteval/auth-service/internal/application/auth"
	"github.com/smarteval/auth-service/internal/logger"
)

// NoopPublisher stands in for the broker when RABBIT_URL is not configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	logger.WithCtx(ctx).Debug().Str("user_id", evt.UserID).Msg("noop-pub: user registered")
	return nil
}

func (p *NoopPublisher) PublishUserLoggedIn(ctx context.Context, evt auth.UserLoggedInEvent) error {
	logger.WithCtx(ctx).Debug().Str("user_id", evt.UserID).Msg("noop-pub: user logged in")
	return nil
}
