package plancache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// RemoteStore is the durable tier. Implementations key the artifact by the
// reserved plan tool id in the user's tool-record store. Absence is (nil, nil).
type RemoteStore interface {
	LoadPlan(ctx context.Context, userId string) (*CachedPlan, error)
	SavePlan(ctx context.Context, cached *CachedPlan) error
}

// Manager owns the two-tier plan cache: a fast in-process tier plus the
// durable remote tier, converged best-effort on every read.
type Manager struct {
	local  *gocache.Cache
	remote RemoteStore
}

func NewManager(remote RemoteStore) *Manager {
	// Local tier is non-durable by design; expiry just bounds memory for
	// users that never come back.
	c := gocache.New(24*time.Hour, 1*time.Hour)
	return &Manager{
		local:  c,
		remote: remote,
	}
}

// LoadCached reads both tiers, reconciles by cachedAt, and writes the winner
// back to the losing tier. Write-back failures are swallowed: convergence is
// best-effort and the caller already has the winning copy.
func (m *Manager) LoadCached(ctx context.Context, userId string) (*CachedPlan, error) {
	var local *CachedPlan
	if x, found := m.local.Get(userId); found {
		local = x.(*CachedPlan)
	}

	remote, err := m.remote.LoadPlan(ctx, userId)
	if err != nil {
		// Remote unreachable: serve local if we have it.
		if local != nil {
			return local, nil
		}
		return nil, fmt.Errorf("load remote plan: %w", err)
	}

	winner, source := Reconcile(local, remote)
	if winner == nil {
		return nil, nil
	}

	switch source {
	case SourceRemote:
		m.local.Set(userId, winner, gocache.DefaultExpiration)
	case SourceLocal:
		if remote == nil || winner.CachedAt.After(remote.CachedAt) {
			_ = m.remote.SavePlan(ctx, winner)
		}
	}

	return winner, nil
}

// Store writes the plan to both tiers. The local write cannot fail; a remote
// failure is returned so the caller can log it, but the local tier already
// holds the result.
func (m *Manager) Store(ctx context.Context, cached *CachedPlan) error {
	m.local.Set(cached.UserId, cached, gocache.DefaultExpiration)

	if err := m.remote.SavePlan(ctx, cached); err != nil {
		return fmt.Errorf("save remote plan: %w", err)
	}
	return nil
}

// Invalidate drops the local copy (the remote copy is left in place; staleness
// flags handle it).
func (m *Manager) Invalidate(userId string) {
	m.local.Delete(userId)
}
