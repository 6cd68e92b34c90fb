// Package browser owns the single authenticated headless-browser session
// shared by all requests: lazy creation, login, liveness checking, and the
// page operations the checker pipeline performs against the lookup tool.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"imeicheck/pkg/config"
	"imeicheck/pkg/logger"
)

// clearInputScript empties the tool page's textarea before typing a new
// IMEI list.
const clearInputScript = `(() => {
	const textarea = document.querySelector('textarea');
	if (textarea) textarea.value = '';
})()`

// clickCheckScript triggers the lookup. The tool's button carries no
// stable id, so any button whose text mentions Check/Search, or any
// submit control, is accepted.
const clickCheckScript = `(() => {
	const buttons = document.querySelectorAll('button, input[type="submit"]');
	for (const button of buttons) {
		const text = button.textContent || button.value || '';
		if (text.includes('Check') || text.includes('Search') || button.type === 'submit') {
			button.click();
			return true;
		}
	}
	return false;
})()`

// Manager owns the process-wide browser session. All state transitions go
// through its mutex, so concurrent requests never race a login: the first
// caller initializes, the rest block on the lock and reuse the result.
type Manager struct {
	target *config.TargetConfig
	engine *config.BrowserConfig

	mu            chan struct{} // buffered-1 lock, allows ctx-aware acquire
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	browserCtx    context.Context
	ready         bool
	closed        bool
}

// NewManager creates a session manager. No browser is launched until the
// first EnsureReady call.
func NewManager(target *config.TargetConfig, engine *config.BrowserConfig) *Manager {
	m := &Manager{
		target: target,
		engine: engine,
		mu:     make(chan struct{}, 1),
	}
	m.mu <- struct{}{}
	return m
}

// lock acquires the manager mutex, honoring context cancellation so a
// caller is not stuck behind a multi-minute batch it no longer wants.
func (m *Manager) lock(ctx context.Context) error {
	select {
	case <-m.mu:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) unlock() {
	m.mu <- struct{}{}
}

// EnsureReady guarantees an authenticated session navigated to the tool
// page. A live session is reused; a dead one is torn down and rebuilt. On
// any initialization failure the session is fully discarded, never left
// half-built, and the error propagates to the caller.
func (m *Manager) EnsureReady(ctx context.Context) error {
	if err := m.lock(ctx); err != nil {
		return err
	}
	defer m.unlock()

	if m.closed {
		return ErrSessionClosed
	}

	if m.ready {
		if m.alive() {
			return nil
		}
		logger.Warn("browser session died, recreating")
		m.teardownLocked()
	}

	if err := m.initLocked(ctx); err != nil {
		m.teardownLocked()
		return err
	}
	m.ready = true
	return nil
}

// alive probes the browser with a trivial evaluation round-trip.
func (m *Manager) alive() bool {
	probeCtx, cancel := context.WithTimeout(m.browserCtx, m.engine.ProbeTimeout())
	defer cancel()
	return chromedp.Run(probeCtx, chromedp.Evaluate(`1`, nil)) == nil
}

// initLocked launches Chrome, performs the login flow and navigates to
// the tool page. Caller holds the lock.
func (m *Manager) initLocked(ctx context.Context) error {
	logger.Info("initializing browser session",
		zap.String("login_url", m.target.LoginURL()),
		zap.Bool("headless", m.engine.Headless))

	opts := browserOptions(m.engine.Headless)
	if path := chromePathWithFallback(m.engine.ChromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
		logger.Debug("using chrome executable", zap.String("path", path))
	}

	// The allocator outlives any single request, so it hangs off the
	// background context rather than the triggering request's.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	m.allocCancel = allocCancel
	m.browserCancel = browserCancel
	m.browserCtx = browserCtx

	if err := chromedp.Run(browserCtx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	loginCtx, cancel := context.WithTimeout(browserCtx, m.engine.NavTimeout())
	defer cancel()

	err := chromedp.Run(loginCtx,
		chromedp.Navigate(m.target.LoginURL()),
		chromedp.Sleep(m.engine.NavSettle()),
		chromedp.WaitVisible(`input[type="password"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[type="text"], input[name="username"]`, m.target.Username, chromedp.ByQuery),
		chromedp.SendKeys(`input[type="password"]`, m.target.Password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"], input[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(m.engine.LoginSettle()),
		chromedp.Navigate(m.target.ToolURL()),
		chromedp.Sleep(m.engine.NavSettle()),
	)
	if err != nil {
		return fmt.Errorf("login flow failed: %w", err)
	}

	// Confirm login succeeded: the tool page is only reachable when
	// authenticated, a failed login bounces back to the login form.
	var location string
	if err := chromedp.Run(loginCtx, chromedp.Location(&location)); err != nil {
		return fmt.Errorf("failed to read page location: %w", err)
	}
	if !strings.Contains(location, m.target.ToolPath) {
		return fmt.Errorf("%w: landed on %s", ErrLoginFailed, location)
	}

	logger.Info("browser session ready", zap.String("url", location))
	return nil
}

// teardownLocked discards the session handle. Caller holds the lock.
func (m *Manager) teardownLocked() {
	if m.browserCancel != nil {
		m.browserCancel()
		m.browserCancel = nil
	}
	if m.allocCancel != nil {
		m.allocCancel()
		m.allocCancel = nil
	}
	m.browserCtx = nil
	m.ready = false
}

// run executes page actions against the live session with a nav timeout.
func (m *Manager) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := m.lock(ctx); err != nil {
		return err
	}
	defer m.unlock()

	if !m.ready {
		return ErrSessionNotReady
	}

	runCtx, cancel := context.WithTimeout(m.browserCtx, m.engine.NavTimeout())
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// OnToolPage reports whether the session currently sits on the tool page.
func (m *Manager) OnToolPage(ctx context.Context) (bool, error) {
	var location string
	if err := m.run(ctx, chromedp.Location(&location)); err != nil {
		return false, err
	}
	return strings.Contains(location, m.target.ToolPath), nil
}

// OpenToolPage navigates to the tool page and waits for its input field.
func (m *Manager) OpenToolPage(ctx context.Context) error {
	return m.run(ctx,
		chromedp.Navigate(m.target.ToolURL()),
		chromedp.Sleep(m.engine.NavSettle()),
		m.waitVisible(`textarea`),
	)
}

// SubmitIMEIs clears the input field, types the IMEI list one per line,
// clicks the check button and waits out the result settle delay. The site
// gives no completion signal, so the settle delay is a configured
// heuristic, not a synchronization primitive.
func (m *Manager) SubmitIMEIs(ctx context.Context, imeis []string) error {
	return m.run(ctx,
		m.waitVisible(`textarea`),
		chromedp.Evaluate(clearInputScript, nil),
		chromedp.SendKeys(`textarea`, strings.Join(imeis, "\n"), chromedp.ByQuery),
		chromedp.Sleep(m.engine.TypeSettle()),
		chromedp.Evaluate(clickCheckScript, nil),
		chromedp.Sleep(m.engine.ResultSettle()),
	)
}

// ResultsHTML snapshots the current page markup for scraping.
func (m *Manager) ResultsHTML(ctx context.Context) (string, error) {
	var html string
	if err := m.run(ctx, chromedp.OuterHTML(`html`, &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// waitVisible bounds a selector wait with the configured timeout.
func (m *Manager) waitVisible(selector string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, m.engine.SelectorTimeout())
		defer cancel()
		if err := chromedp.WaitVisible(selector, chromedp.ByQuery).Do(waitCtx); err != nil {
			return fmt.Errorf("element not ready within %v: %s", m.engine.SelectorTimeout(), selector)
		}
		return nil
	})
}

// Close tears the session down for good. Called on process shutdown.
func (m *Manager) Close() {
	<-m.mu
	defer m.unlock()

	m.closed = true
	if m.ready || m.browserCancel != nil {
		logger.Info("closing browser session")
	}
	m.teardownLocked()
}
