package server

import (
	"context"
	"errors"
	"fmt"
)

// HealthService defines behaviour for readiness checks.
type HealthService interface {
	Check(ctx context.Context) error
}

// NamedCheck labels a dependency checked by /healthz.
type NamedCheck struct {
	Name  string
	Check HealthService
}

// CompositeHealth checks every dependency and reports all failures.
type CompositeHealth []NamedCheck

// Check implements the HealthService interface.
func (c CompositeHealth) Check(ctx context.Context) error {
	var errs []error
	for _, p := range c {
		if p.Check == nil {
			continue
		}
		if err := p.Check.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
		}
	}
	return errors.Join(errs...)
}
