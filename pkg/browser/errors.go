package browser

import "errors"

var (
	// ErrSessionClosed is returned after Close; the process is shutting down.
	ErrSessionClosed = errors.New("browser session closed")
	// ErrSessionNotReady is returned when a page operation runs before
	// EnsureReady has built a session.
	ErrSessionNotReady = errors.New("browser session not ready")
	// ErrLoginFailed marks a login flow that did not reach the tool page.
	ErrLoginFailed = errors.New("login failed")
)
