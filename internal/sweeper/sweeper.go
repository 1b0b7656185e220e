// Package sweeper holds the periodic maintenance loops over the purchase
// tables: reaping stale reservations and surfacing stuck fulfillment claims.
package sweeper

import (
	"context"
)

// Sweeper is one maintenance loop. Sweeps mutate purchases only through the
// same conditional updates the workers use, so running a sweeper alongside
// live traffic is safe.
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the sweep loop, blocking until the context is canceled or
	// Stop is called
	Start(ctx context.Context) error

	// Stop waits for an in-flight sweep to finish
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
