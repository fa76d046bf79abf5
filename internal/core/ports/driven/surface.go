package driven

import "context"

// AuthSurface is an embeddable browser view used to drive an OAuth redirect
// flow. The core only consumes the URLs the surface navigates through; the
// rendering itself is the adapter's concern.
type AuthSurface interface {
	// Navigate loads a URL into the surface.
	Navigate(url string) error

	// Navigations emits the target URL of every navigation and redirect
	// observed on the surface, in order.
	Navigations() <-chan string

	// Closed is closed when the surface goes away before Close is called,
	// typically because the user dismissed the window.
	Closed() <-chan struct{}

	// Close tears the surface down. Safe to call more than once.
	Close()
}

// SurfaceOpener creates auth surfaces. The surface is shown to the user only
// when visible is true; silent reauthentication uses a hidden surface.
type SurfaceOpener interface {
	Open(ctx context.Context, visible bool) (AuthSurface, error)
}
