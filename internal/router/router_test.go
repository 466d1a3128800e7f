package router

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
)

type stubSession struct {
	active bool
}

func (s *stubSession) Active() bool { return s.active }

func newTestRouter(session *stubSession) *Router {
	if session == nil {
		session = &stubSession{active: true}
	}
	return New(Opts{
		Session: session,
		Logger:  log.New(io.Discard),
	})
}

func TestParsePattern(t *testing.T) {
	t.Run("Literal Segments", func(t *testing.T) {
		segments, err := parsePattern("home")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(segments) != 1 || segments[0].param || segments[0].value != "home" {
			t.Errorf("unexpected segments: %+v", segments)
		}
	})

	t.Run("Param Segment With Dash Separator", func(t *testing.T) {
		segments, err := parsePattern("playlist-:idplaylist")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(segments) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(segments))
		}
		if segments[0].param || segments[0].value != "playlist" {
			t.Errorf("unexpected literal segment: %+v", segments[0])
		}
		if !segments[1].param || segments[1].value != "idplaylist" {
			t.Errorf("unexpected param segment: %+v", segments[1])
		}
	})

	t.Run("Unnamed Param", func(t *testing.T) {
		if _, err := parsePattern("playlist-:"); err == nil {
			t.Error("expected error for unnamed parameter")
		}
	})

	t.Run("Empty Pattern", func(t *testing.T) {
		if _, err := parsePattern(""); err == nil {
			t.Error("expected error for empty pattern")
		}
	})
}

func TestMatch(t *testing.T) {
	segments, err := parsePattern("playlist-:idplaylist")
	if err != nil {
		t.Fatalf("failed to parse pattern: %v", err)
	}

	t.Run("Captures Param", func(t *testing.T) {
		params, ok := match(segments, "playlist-42")
		if !ok {
			t.Fatal("expected match")
		}
		if params["idplaylist"] != "42" {
			t.Errorf("expected idplaylist=42, got %q", params["idplaylist"])
		}
	})

	t.Run("URL Decodes Captures", func(t *testing.T) {
		params, ok := match(segments, "playlist-a%20b")
		if !ok {
			t.Fatal("expected match")
		}
		if params["idplaylist"] != "a b" {
			t.Errorf("expected decoded capture, got %q", params["idplaylist"])
		}
	})

	t.Run("Rejects Missing Param", func(t *testing.T) {
		if _, ok := match(segments, "playlist"); ok {
			t.Error("expected no match for missing param segment")
		}
	})

	t.Run("Rejects Different Literal", func(t *testing.T) {
		if _, ok := match(segments, "songs-42"); ok {
			t.Error("expected no match for different literal")
		}
	})
}

func TestRouter(t *testing.T) {
	t.Run("Unregistered Fragment Renders Not Found", func(t *testing.T) {
		r := newTestRouter(nil)
		var invoked atomic.Bool
		if err := r.Handle("home", func(ctx context.Context, screen Screen, params Params) error {
			invoked.Store(true)
			screen.Render("home page")
			return nil
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}

		r.Start(context.Background())
		r.Wait()
		invoked.Store(false)

		r.Navigate("doesnotexist")
		r.Wait()

		if invoked.Load() {
			t.Error("no controller should run for an unregistered fragment")
		}
		if r.State() != StateError {
			t.Errorf("expected StateError, got %v", r.State())
		}
		if r.Display().View() != notFoundView {
			t.Errorf("expected not-found view, got %q", r.Display().View())
		}
	})

	t.Run("Protected Route Redirects To Login", func(t *testing.T) {
		session := &stubSession{active: false}
		r := newTestRouter(session)

		var songsInvoked, loginInvoked atomic.Bool
		if err := r.Handle("songs", func(ctx context.Context, screen Screen, params Params) error {
			songsInvoked.Store(true)
			return nil
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}
		if err := r.Handle(LoginRoute, func(ctx context.Context, screen Screen, params Params) error {
			loginInvoked.Store(true)
			screen.Render("login page")
			return nil
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}
		r.Public(LoginRoute)

		r.location.fragment = "#songs"
		r.Start(context.Background())
		r.Wait()

		if songsInvoked.Load() {
			t.Error("songs controller must not run without a session marker")
		}
		if !loginInvoked.Load() {
			t.Error("login controller should have run after the redirect")
		}
		if r.location.Fragment() != "#login" {
			t.Errorf("expected fragment #login, got %q", r.location.Fragment())
		}
	})

	t.Run("Empty And Home Fragments Are Equivalent", func(t *testing.T) {
		for _, fragment := range []string{"", "#", "#home"} {
			t.Run(fmt.Sprintf("Fragment %q", fragment), func(t *testing.T) {
				r := newTestRouter(nil)
				var homeRuns atomic.Int32
				if err := r.Handle(HomeRoute, func(ctx context.Context, screen Screen, params Params) error {
					homeRuns.Add(1)
					screen.Render("home page")
					return nil
				}); err != nil {
					t.Fatalf("failed to register route: %v", err)
				}

				r.location.fragment = fragment
				r.Start(context.Background())
				r.Wait()

				if got := homeRuns.Load(); got != 1 {
					t.Errorf("expected home controller to run exactly once, ran %d times", got)
				}
				if r.location.Fragment() != "#home" {
					t.Errorf("expected fragment #home, got %q", r.location.Fragment())
				}
			})
		}
	})

	t.Run("Controller Error Renders Error View And Router Stays Live", func(t *testing.T) {
		r := newTestRouter(nil)
		if err := r.Handle("broken", func(ctx context.Context, screen Screen, params Params) error {
			return fmt.Errorf("boom")
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}
		if err := r.Handle(HomeRoute, func(ctx context.Context, screen Screen, params Params) error {
			screen.Render("home page")
			return nil
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}

		r.Start(context.Background())
		r.Wait()

		r.Navigate("broken")
		r.Wait()

		if r.Display().View() != errorView {
			t.Errorf("expected error view, got %q", r.Display().View())
		}
		if r.State() != StateDispatched {
			t.Errorf("expected StateDispatched after caught error, got %v", r.State())
		}

		r.Navigate("home")
		r.Wait()
		if r.Display().View() != "home page" {
			t.Errorf("router should survive a failing controller, got %q", r.Display().View())
		}
	})

	t.Run("Controller Panic Is Caught", func(t *testing.T) {
		r := newTestRouter(nil)
		if err := r.Handle("panicky", func(ctx context.Context, screen Screen, params Params) error {
			panic("unexpected")
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}

		r.Start(context.Background())
		r.Navigate("panicky")
		r.Wait()

		if r.Display().View() != errorView {
			t.Errorf("expected error view after panic, got %q", r.Display().View())
		}
	})

	t.Run("Duplicate Pattern Fails Fast", func(t *testing.T) {
		r := newTestRouter(nil)
		noop := func(ctx context.Context, screen Screen, params Params) error { return nil }
		if err := r.Handle("songs", noop); err != nil {
			t.Fatalf("first registration should succeed: %v", err)
		}
		if err := r.Handle("songs", noop); err == nil {
			t.Error("expected error registering the same pattern twice")
		}
	})

	t.Run("Params Reach The Controller", func(t *testing.T) {
		r := newTestRouter(nil)
		var got atomic.Value
		if err := r.Handle("playlist-:idplaylist", func(ctx context.Context, screen Screen, params Params) error {
			got.Store(params["idplaylist"])
			screen.Render("playlist page")
			return nil
		}); err != nil {
			t.Fatalf("failed to register route: %v", err)
		}

		r.Start(context.Background())
		r.Navigate("playlist-7")
		r.Wait()

		if got.Load() != "7" {
			t.Errorf("expected param 7, got %v", got.Load())
		}
	})
}

func TestDisplayTokens(t *testing.T) {
	t.Run("Stale Write Is Dropped", func(t *testing.T) {
		d := NewDisplay()
		older := Screen{display: d, token: 1}
		newer := Screen{display: d, token: 2}

		if !newer.Render("new page") {
			t.Fatal("newer write should land")
		}
		if older.Render("stale page") {
			t.Error("stale write should be dropped")
		}
		if d.View() != "new page" {
			t.Errorf("expected new page to stay displayed, got %q", d.View())
		}
	})
}
