// Package hashpool runs bcrypt hashing on a bounded worker pool so that a
// burst of signups or logins cannot occupy every runnable goroutine with
// CPU-bound work.
package hashpool

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSize is the pool capacity used when an invalid size is given.
const DefaultSize = 4

// Pool limits the number of concurrent bcrypt operations.
type Pool struct {
	sem  chan struct{}
	cost int
}

// New creates a Pool with the given capacity and bcrypt cost.
// A non-positive size falls back to DefaultSize; a cost outside the bcrypt
// range falls back to bcrypt.DefaultCost.
func New(size, cost int) *Pool {
	if size <= 0 {
		size = DefaultSize
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Pool{
		sem:  make(chan struct{}, size),
		cost: cost,
	}
}

// acquire blocks until a worker slot is free or the context is done.
func (p *Pool) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) release() {
	<-p.sem
}

// Hash generates a salted bcrypt digest for the given plaintext.
func (p *Pool) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := p.acquire(ctx); err != nil {
		return "", err
	}
	defer p.release()

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Compare checks plaintext against a bcrypt digest in constant time.
// Any failure, including a malformed digest, is reported as a mismatch so
// callers cannot distinguish the two cases.
func (p *Pool) Compare(ctx context.Context, hashed, plaintext string) error {
	if err := p.acquire(ctx); err != nil {
		return err
	}
	defer p.release()

	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
}
