package crewcontext

import (
	"context"
	"sync"
	"time"

	"crewfit/internal/synergy"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// InMemoryRegistry is the source of truth the cache loads from when no
// external crew system is wired. The crewing integration writes through
// Upsert; Load satisfies the cache's Loader contract.
type InMemoryRegistry struct {
	mu       sync.RWMutex
	contexts map[id.VesselID]*synergy.CrewContext
	now      func() time.Time
}

// NewInMemoryRegistry builds an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		contexts: make(map[id.VesselID]*synergy.CrewContext),
		now:      time.Now,
	}
}

// Upsert replaces the stored crew context for a vessel.
func (r *InMemoryRegistry) Upsert(_ context.Context, crewCtx *synergy.CrewContext) error {
	if crewCtx == nil || crewCtx.VesselID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "crew context requires a vessel id")
	}

	stored := cloneContext(crewCtx)
	if stored.FetchedAt.IsZero() {
		stored.FetchedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.contexts[stored.VesselID] = stored
	return nil
}

// Load returns the stored crew context for a vessel.
func (r *InMemoryRegistry) Load(_ context.Context, vessel id.VesselID) (*synergy.CrewContext, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.contexts[vessel]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no crew context for vessel %s", vessel)
	}
	return cloneContext(stored), nil
}

func cloneContext(in *synergy.CrewContext) *synergy.CrewContext {
	out := *in
	if in.Captain != nil {
		captain := *in.Captain
		if in.Captain.Traits != nil {
			captain.Traits = make(map[string]float64, len(in.Captain.Traits))
			for k, v := range in.Captain.Traits {
				captain.Traits[k] = v
			}
		}
		out.Captain = &captain
	}
	out.Crew = make([]synergy.CrewMember, len(in.Crew))
	for i, member := range in.Crew {
		out.Crew[i] = member
		if member.Dimensions != nil {
			out.Crew[i].Dimensions = make(map[string]int, len(member.Dimensions))
			for k, v := range member.Dimensions {
				out.Crew[i].Dimensions[k] = v
			}
		}
	}
	return &out
}
