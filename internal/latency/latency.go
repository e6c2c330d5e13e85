// Package latency simulates network round-trip time in front of the store.
package latency

import (
	"context"
	"time"
)

// Operation names used to look up per-operation delays.
const (
	OpFetchUsers         = "fetch_users"
	OpFetchGroups        = "fetch_groups"
	OpGetGroup           = "get_group"
	OpCreateGroup        = "create_group"
	OpAddUserToGroup     = "add_user_to_group"
	OpUpdateGroup        = "update_group"
	OpUpdateGroupMembers = "update_group_members"
	OpDeleteGroup        = "delete_group"
)

// Strategy decides how long an operation waits before touching the store.
type Strategy interface {
	// Wait blocks for the operation's delay or until ctx is done,
	// in which case it returns ctx.Err().
	Wait(ctx context.Context, op string) error
}

// Profile maps operations to delays. Operations not listed use Fallback.
type Profile struct {
	Delays   map[string]time.Duration
	Fallback time.Duration
}

// Default returns the mock backend delays: half a second for
// everything except adding a single member.
func Default() Profile {
	return Profile{
		Delays: map[string]time.Duration{
			OpAddUserToGroup: 300 * time.Millisecond,
		},
		Fallback: 500 * time.Millisecond,
	}
}

// None returns a strategy that never waits. Use it in tests.
func None() Profile {
	return Profile{}
}

// Fixed returns a strategy that waits d for every operation.
func Fixed(d time.Duration) Profile {
	return Profile{Fallback: d}
}

// Delay returns the configured delay for op.
func (p Profile) Delay(op string) time.Duration {
	if d, ok := p.Delays[op]; ok {
		return d
	}
	return p.Fallback
}

// Scale returns a copy of p with every delay multiplied by factor.
func (p Profile) Scale(factor float64) Profile {
	scaled := Profile{
		Delays:   make(map[string]time.Duration, len(p.Delays)),
		Fallback: time.Duration(float64(p.Fallback) * factor),
	}
	for op, d := range p.Delays {
		scaled.Delays[op] = time.Duration(float64(d) * factor)
	}
	return scaled
}

// Wait implements Strategy.
func (p Profile) Wait(ctx context.Context, op string) error {
	return sleep(ctx, p.Delay(op))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
