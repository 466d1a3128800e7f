package router

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Controller handles a dispatched route: fetch data, render into the screen.
// Errors are caught by the router and turn into the generic error view.
type Controller func(ctx context.Context, screen Screen, params Params) error

// SessionChecker reports whether a session marker is present. The marker is a
// local hint, not the source of truth; the backend confirms or denies on the
// first API call.
type SessionChecker interface {
	Active() bool
}

// State is the router's navigation state.
type State int

const (
	StateIdle       State = iota // no navigation handled yet
	StateResolving               // matching the current fragment
	StateDispatched              // a controller ran (successfully or not)
	StateError                   // no route matched the fragment
)

// LoginRoute is the route key protected navigations redirect to.
const LoginRoute = "login"

// HomeRoute is the route key empty fragments normalize to.
const HomeRoute = "home"

type route struct {
	pattern    string
	segments   []segment
	controller Controller
}

// Opts contains the collaborators a Router needs.
type Opts struct {
	Location *Location
	Display  *Display
	Session  SessionChecker
	Logger   *log.Logger
}

// Router owns the route table and drives navigation. It lives for the whole
// process: a failed navigation renders a fallback view and the router stays
// ready for the next fragment change.
type Router struct {
	mu       sync.Mutex
	location *Location
	display  *Display
	session  SessionChecker
	logger   *log.Logger
	routes   []route
	public   map[string]bool
	token    atomic.Uint64
	state    State
	ctx      context.Context
	wg       sync.WaitGroup
}

// New creates a Router. Register routes with Handle, mark public ones with
// Public, then call Start.
func New(opts Opts) *Router {
	if opts.Location == nil {
		opts.Location = NewLocation()
	}
	if opts.Display == nil {
		opts.Display = NewDisplay()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &Router{
		location: opts.Location,
		display:  opts.Display,
		session:  opts.Session,
		logger:   opts.Logger,
		public:   map[string]bool{},
		state:    StateIdle,
	}
}

// Handle registers a controller for a route pattern. Patterns match in
// registration order; registering the same pattern twice is an error so
// ambiguity fails fast instead of shadowing.
func (r *Router) Handle(pattern string, controller Controller) error {
	segments, err := parsePattern(pattern)
	if err != nil {
		return err
	}

	for _, existing := range r.routes {
		if existing.pattern == pattern {
			return fmt.Errorf("route pattern %q already registered", pattern)
		}
	}

	r.routes = append(r.routes, route{pattern: pattern, segments: segments, controller: controller})
	return nil
}

// Public marks route keys that skip the session gate (login, signup).
func (r *Router) Public(patterns ...string) {
	for _, p := range patterns {
		r.public[p] = true
	}
}

// Start subscribes to fragment changes and processes the current fragment.
// The route table is immutable from here on.
func (r *Router) Start(ctx context.Context) {
	r.ctx = ctx
	r.location.listen(r.handleChange)
	r.handleChange()
}

// Navigate sets the fragment for the given route key, triggering a
// change notification when it differs from the current one.
func (r *Router) Navigate(key string) {
	r.location.Set(key)
}

// State returns the state of the most recent navigation.
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Display returns the shared display region.
func (r *Router) Display() *Display {
	return r.display
}

// Wait blocks until all in-flight controllers have returned.
func (r *Router) Wait() {
	r.wg.Wait()
}

// handleChange reacts to a fragment change: normalize, match, gate, dispatch.
func (r *Router) handleChange() {
	fragment := r.location.Fragment()

	// An empty fragment means home, but the address bar must agree with the
	// dispatched route key: rewrite first and let the change notification
	// re-enter. Costs one extra round-trip on cold load.
	if fragment == "" || fragment == "#" {
		r.location.Set("#" + HomeRoute)
		return
	}

	path := strings.TrimPrefix(fragment, "#")
	token := r.token.Add(1)

	r.setState(StateResolving)
	r.display.render(token, loaderView)

	for _, rt := range r.routes {
		params, ok := match(rt.segments, path)
		if !ok {
			continue
		}
		r.dispatch(token, rt, params)
		return
	}

	r.logger.Error("no route matches path, displaying 404", "path", path)
	r.display.render(token, notFoundView)
	r.setState(StateError)
}

// dispatch applies the session gate and runs the controller. The controller
// runs on its own goroutine so a slow page never blocks the next navigation
// from being accepted; its screen token keeps late writes out of the display.
func (r *Router) dispatch(token uint64, rt route, params Params) {
	if !r.public[rt.pattern] && !r.sessionActive() {
		r.logger.Warn("protected route without session, redirecting to login", "route", rt.pattern)
		r.location.Set("#" + LoginRoute)
		return
	}

	screen := Screen{display: r.display, token: token}
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("controller panicked", "route", rt.pattern, "panic", p)
				screen.Render(errorView)
			}
			r.setState(StateDispatched)
		}()

		if err := rt.controller(ctx, screen, params); err != nil {
			r.logger.Error("controller failed", "route", rt.pattern, "err", err)
			screen.Render(errorView)
		}
	}()
}

func (r *Router) sessionActive() bool {
	return r.session != nil && r.session.Active()
}

func (r *Router) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}
