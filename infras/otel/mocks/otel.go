package mocks

import (
	"context"

	"tourdesk/infras/otel"
)

type otelImpl struct{}

// NewScope returns ctx unchanged with a scope that records nothing.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

func NewOtel() otel.Otel {
	return &otelImpl{}
}
