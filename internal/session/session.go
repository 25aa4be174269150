// Package session resolves and caches the execution context for layout
// operations: which window to act on and which work area to act within.
// Results are memoized briefly so rapid preview navigation does not hammer
// the window-system providers.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/snapdeck/snapdeck/internal/geometry"
	"github.com/snapdeck/snapdeck/internal/inventory"
)

// DefaultTTL is how long a resolved context or inventory snapshot stays
// fresh before the next access refetches it.
const DefaultTTL = 800 * time.Millisecond

// Context is the cached per-session resolution result: the best-guess target
// window (nil when none is resolvable) and the usable work area.
type Context struct {
	Target *inventory.Window
	Area   geometry.Area
}

// Providers supplies the external collaborators the resolver consults.
// Only Windows and DisplayMetrics are required; the rest are optional
// fast paths tried in order.
type Providers struct {
	// ManagementContext returns a combined best-guess target window and work
	// area in one call, when the host offers such an API.
	ManagementContext func() (*inventory.Window, *geometry.Area, error)
	// TargetWindow returns a dedicated layout target, when available.
	TargetWindow func() (*inventory.Window, error)
	// ActiveWindow returns the generically focused window.
	ActiveWindow func() (*inventory.Window, error)
	// Windows enumerates all windows on the active virtual desktop.
	Windows func() ([]inventory.Window, error)
	// DisplayMetrics is the fallback work area when no provider supplied one.
	DisplayMetrics func() (geometry.Area, error)
}

// Resolver caches context and inventory resolution with a TTL and in-flight
// request coalescing. All access goes through its methods; callers never read
// cached state directly.
type Resolver struct {
	providers Providers
	isSelf    inventory.SelfIdentifier
	ttl       time.Duration
	now       func() time.Time

	mu sync.Mutex

	ctxCached    *Context
	ctxFetchedAt time.Time
	ctxInflight  *contextCall

	winCached    []inventory.Window
	winFetchedAt time.Time
	winInflight  *windowsCall
}

type contextCall struct {
	done chan struct{}
	ctx  Context
	err  error
}

type windowsCall struct {
	done    chan struct{}
	windows []inventory.Window
	err     error
}

// NewResolver creates a resolver over the given providers. isSelf identifies
// the host's own window so it is never chosen as a target.
func NewResolver(providers Providers, isSelf inventory.SelfIdentifier) *Resolver {
	return &Resolver{
		providers: providers,
		isSelf:    isSelf,
		ttl:       DefaultTTL,
		now:       time.Now,
	}
}

// IsSelf returns the host-identity predicate the resolver filters with.
func (r *Resolver) IsSelf() inventory.SelfIdentifier {
	return r.isSelf
}

// Reset wipes both caches wholesale. Called whenever a new interactive
// session opens so stale geometry from a previous session never leaks in.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctxCached = nil
	r.ctxFetchedAt = time.Time{}
	r.winCached = nil
	r.winFetchedAt = time.Time{}
}

// ResolveContext returns the target window and work area. Cached results are
// served within the TTL; concurrent callers during an in-flight resolution
// share the same pending result. force bypasses both the cache and the
// coalescing and always performs a fresh resolution.
func (r *Resolver) ResolveContext(force bool) (Context, error) {
	r.mu.Lock()

	if !force {
		if r.ctxCached != nil && r.now().Sub(r.ctxFetchedAt) <= r.ttl {
			ctx := *r.ctxCached
			r.mu.Unlock()
			return ctx, nil
		}
		if r.ctxInflight != nil {
			call := r.ctxInflight
			r.mu.Unlock()
			<-call.done
			return call.ctx, call.err
		}
	}

	call := &contextCall{done: make(chan struct{})}
	if !force {
		r.ctxInflight = call
	}
	r.mu.Unlock()

	ctx, err := r.resolveContextFresh()

	r.mu.Lock()
	if err == nil {
		snapshot := ctx
		r.ctxCached = &snapshot
		r.ctxFetchedAt = r.now()
	}
	if r.ctxInflight == call {
		r.ctxInflight = nil
	}
	r.mu.Unlock()

	call.ctx = ctx
	call.err = err
	close(call.done)
	return ctx, err
}

// LoadWindows returns the full window inventory under the same TTL and
// coalescing discipline as ResolveContext. Needed only for multi-window
// presets.
func (r *Resolver) LoadWindows(force bool) ([]inventory.Window, error) {
	r.mu.Lock()

	if !force {
		if r.winCached != nil && r.now().Sub(r.winFetchedAt) <= r.ttl {
			windows := r.winCached
			r.mu.Unlock()
			return windows, nil
		}
		if r.winInflight != nil {
			call := r.winInflight
			r.mu.Unlock()
			<-call.done
			return call.windows, call.err
		}
	}

	call := &windowsCall{done: make(chan struct{})}
	if !force {
		r.winInflight = call
	}
	r.mu.Unlock()

	var windows []inventory.Window
	var err error
	if r.providers.Windows != nil {
		windows, err = r.providers.Windows()
	} else {
		err = fmt.Errorf("no window enumeration provider configured")
	}

	r.mu.Lock()
	if err == nil {
		r.winCached = windows
		r.winFetchedAt = r.now()
	}
	if r.winInflight == call {
		r.winInflight = nil
	}
	r.mu.Unlock()

	call.windows = windows
	call.err = err
	close(call.done)
	return windows, err
}

// resolveContextFresh walks the provider chain: combined context, dedicated
// target, active window, then a full enumeration with a nearest-center pick.
// The work area falls back to host display metrics when no provider supplied
// one.
func (r *Resolver) resolveContextFresh() (Context, error) {
	var target *inventory.Window
	var area *geometry.Area

	if r.providers.ManagementContext != nil {
		win, a, err := r.providers.ManagementContext()
		if err == nil {
			if a != nil && a.Width > 0 && a.Height > 0 {
				area = a
			}
			if win != nil && inventory.IsManageable(*win, r.isSelf) {
				target = win
			}
		}
	}

	if area == nil {
		if r.providers.DisplayMetrics == nil {
			return Context{}, fmt.Errorf("no work area available: display metrics provider not configured")
		}
		a, err := r.providers.DisplayMetrics()
		if err != nil {
			return Context{}, fmt.Errorf("failed to resolve work area: %w", err)
		}
		area = &a
	}

	if target == nil && r.providers.TargetWindow != nil {
		if win, err := r.providers.TargetWindow(); err == nil &&
			win != nil && inventory.IsManageable(*win, r.isSelf) {
			target = win
		}
	}

	if target == nil && r.providers.ActiveWindow != nil {
		if win, err := r.providers.ActiveWindow(); err == nil &&
			win != nil && inventory.IsManageable(*win, r.isSelf) {
			target = win
		}
	}

	if target == nil && r.providers.Windows != nil {
		if windows, err := r.providers.Windows(); err == nil {
			target = inventory.BestTargetForArea(windows, *area, r.isSelf)
		}
	}

	return Context{Target: target, Area: *area}, nil
}
