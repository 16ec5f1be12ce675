package customers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/pkg/enums"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

// DefaultStatusTimeout caps how long a status read may take before the
// resolver settles on an unknown status.
const DefaultStatusTimeout = 5 * time.Second

// Resolution is the resolver output. A nil Status means the status is
// unknown: no user, no profile, a read error, or a timeout.
type Resolution struct {
	Status    *enums.CustomerStatus
	IsLoading bool
}

// IsApproved reports whether the resolved status grants ordering rights.
func (r Resolution) IsApproved() bool {
	return r.Status != nil && *r.Status == enums.CustomerStatusApproved
}

type statusReader interface {
	StatusByUserID(ctx context.Context, userID uuid.UUID) (enums.CustomerStatus, error)
}

// Resolver answers "what is this customer's status" with a hard upper bound
// on latency. Every failure mode resolves to an unknown status rather than
// an error so callers always fail closed.
type Resolver struct {
	reader  statusReader
	timeout time.Duration
	logg    *logger.Logger
}

// NewResolver builds a resolver. A non-positive timeout falls back to the default.
func NewResolver(reader statusReader, timeout time.Duration, logg *logger.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultStatusTimeout
	}
	return &Resolver{reader: reader, timeout: timeout, logg: logg}
}

// Resolve races the profile read against the configured timeout. A nil
// userID resolves immediately to unknown without touching storage.
func (r *Resolver) Resolve(ctx context.Context, userID *uuid.UUID) Resolution {
	if userID == nil || *userID == uuid.Nil {
		return Resolution{}
	}

	readCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type result struct {
		status enums.CustomerStatus
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		status, err := r.reader.StatusByUserID(readCtx, *userID)
		ch <- result{status: status, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if r.logg != nil {
				r.logg.Warn(ctx, "customer status read failed: "+res.err.Error())
			}
			return Resolution{}
		}
		status := res.status
		return Resolution{Status: &status}
	case <-readCtx.Done():
		if r.logg != nil {
			r.logg.Warn(ctx, "customer status read timed out")
		}
		return Resolution{}
	}
}

// StatusEvent is a live status change observed on the domain feed.
type StatusEvent struct {
	UserID uuid.UUID
	Status enums.CustomerStatus
}

// Cell holds the latest known resolution for one user. It is fed by two
// independent sources, the initial fetch and the live event feed, and the
// last write wins regardless of which source it came from.
type Cell struct {
	mu      sync.RWMutex
	userID  uuid.UUID
	status  *enums.CustomerStatus
	loading bool
}

// NewCell starts in the loading state for the given user.
func NewCell(userID uuid.UUID) *Cell {
	return &Cell{userID: userID, loading: true}
}

// Set stores the status and clears the loading flag.
func (c *Cell) Set(status *enums.CustomerStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.loading = false
}

// Snapshot returns the current resolution.
func (c *Cell) Snapshot() Resolution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Resolution{Status: c.status, IsLoading: c.loading}
}

// Populate runs the initial fetch and stores the result. It is safe to run
// concurrently with Watch; whichever writes later wins.
func (c *Cell) Populate(ctx context.Context, resolver *Resolver) {
	id := c.userID
	res := resolver.Resolve(ctx, &id)
	c.Set(res.Status)
}

// Watch applies status events for this cell's user until ctx is done or the
// feed closes. Events for other users are ignored.
func (c *Cell) Watch(ctx context.Context, events <-chan StatusEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.UserID != c.userID {
				continue
			}
			status := event.Status
			c.Set(&status)
		}
	}
}
