package resolver

import (
	"context"

	"go.uber.org/zap"
)

// Stack composes an ordered list of providers into a single Provider.
// Every open is tried against the providers in registration order: the
// first Success wins, the first fatal error aborts the whole request, and
// ErrNotAvailable falls through to the next provider. If every provider
// answers ErrNotAvailable, so does the stack.
//
// The stack borrows its providers; it owns neither their lifetime nor
// their resources, so the providers must outlive it. Provider order is
// fixed at construction.
type Stack struct {
	providers []Provider
	logger    *zap.Logger
}

// NewStack builds a stack over providers, queried in the given order.
func NewStack(logger *zap.Logger, providers ...Provider) *Stack {
	return &Stack{
		providers: providers,
		logger:    logger,
	}
}

// InputOpenName resolves a read through the provider chain. The name is
// normalized best-effort first; if it cannot be normalized the original
// string is passed through for the backends to judge.
func (s *Stack) InputOpenName(ctx context.Context, name string) (*InputHandle, error) {
	name = Normalize(name)

	for i, p := range s.providers {
		h, err := p.InputOpenName(ctx, name)
		if IsNotAvailable(err) {
			continue
		}
		if err != nil {
			s.logger.Debug("input open failed",
				zap.String("name", name),
				zap.Int("provider", i),
				zap.Error(err))
			return nil, err
		}
		s.logger.Debug("input resolved",
			zap.String("name", name),
			zap.Int("provider", i),
			zap.Stringer("origin", h.Origin()))
		return h, nil
	}
	return nil, ErrNotAvailable
}

// OutputOpenName resolves a write through the provider chain under the
// same order and short-circuit rules as reads. Which backends accept a
// given output name is entirely their policy; typically only a designated
// sink does.
func (s *Stack) OutputOpenName(ctx context.Context, name string) (*OutputHandle, error) {
	name = Normalize(name)

	for i, p := range s.providers {
		h, err := p.OutputOpenName(ctx, name)
		if IsNotAvailable(err) {
			continue
		}
		if err != nil {
			s.logger.Debug("output open failed",
				zap.String("name", name),
				zap.Int("provider", i),
				zap.Error(err))
			return nil, err
		}
		s.logger.Debug("output resolved",
			zap.String("name", name),
			zap.Int("provider", i))
		return h, nil
	}
	return nil, ErrNotAvailable
}

// OutputOpenStdout resolves the standard output sink through the chain.
func (s *Stack) OutputOpenStdout(ctx context.Context) (*OutputHandle, error) {
	for _, p := range s.providers {
		h, err := p.OutputOpenStdout(ctx)
		if IsNotAvailable(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	return nil, ErrNotAvailable
}
