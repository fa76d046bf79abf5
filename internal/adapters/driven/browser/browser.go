// Package browser implements the auth surface port on top of a Chromium
// instance driven via chromedp. The surface reports every navigation and
// redirect URL observed on the tab, which is all the OAuth flow needs.
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/raksonibs/waffle/internal/core/ports/driven"
	"github.com/raksonibs/waffle/internal/logger"
)

// Ensure Opener implements the port.
var _ driven.SurfaceOpener = (*Opener)(nil)

// navigationBuffer bounds the number of unread navigation events; OAuth
// round-trips are a handful of redirects, so overflow only happens after the
// flow has already resolved.
const navigationBuffer = 32

// Opener creates Chromium-backed auth surfaces.
type Opener struct {
	// ExecPath overrides the Chromium binary location. Empty uses the
	// chromedp default lookup.
	ExecPath string
}

// NewOpener creates a surface opener.
func NewOpener(execPath string) *Opener {
	return &Opener{ExecPath: execPath}
}

// Open launches a Chromium window. The window is shown to the user only when
// visible is true; silent reauthentication runs headless.
func (o *Opener) Open(ctx context.Context, visible bool) (driven.AuthSurface, error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", !visible))
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	s := &surface{
		ctx:    tabCtx,
		cancel: func() { cancelTab(); cancelAlloc() },
		navs:   make(chan string, navigationBuffer),
		closed: make(chan struct{}),
	}

	chromedp.ListenTarget(tabCtx, func(ev any) {
		switch e := ev.(type) {
		case *page.EventFrameNavigated:
			// Only the top-level frame carries the redirect URLs the
			// OAuth flow cares about.
			if e.Frame.ParentID == "" {
				s.emit(e.Frame.URL)
			}
		case *page.EventNavigatedWithinDocument:
			// Fragment navigations deliver implicit-flow tokens.
			s.emit(e.URL)
		}
	})

	// Start the browser before handing the surface out.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: launch chromium: %w", err)
	}

	// The tab context ends when the user closes the window (or the parent
	// context is cancelled); either way the surface is gone.
	go func() {
		<-tabCtx.Done()
		s.markClosed()
	}()

	return s, nil
}

// surface is one Chromium tab acting as an auth surface.
type surface struct {
	ctx    context.Context
	cancel context.CancelFunc
	navs   chan string
	closed chan struct{}

	mu       sync.Mutex
	done     bool
	tornDown bool
}

// Navigate loads a URL into the tab.
func (s *surface) Navigate(url string) error {
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("browser: navigate: %w", err)
	}
	return nil
}

// Navigations emits the URL of every observed navigation and redirect.
func (s *surface) Navigations() <-chan string {
	return s.navs
}

// Closed is closed when the tab goes away before Close is called.
func (s *surface) Closed() <-chan struct{} {
	return s.closed
}

// Close tears the tab and browser down. Safe to call more than once.
func (s *surface) Close() {
	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		return
	}
	s.tornDown = true
	s.done = true
	s.mu.Unlock()

	s.cancel()
}

// emit forwards a navigation URL without blocking the CDP event loop.
func (s *surface) emit(url string) {
	select {
	case s.navs <- url:
	default:
		logger.Debug("browser: navigation buffer full, dropping %s", url)
	}
}

// markClosed signals a user-initiated close, unless Close already ran.
func (s *surface) markClosed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	close(s.closed)
}
