package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
)

/*
Responsibilities
- Launch a local browser or attach to a remote one
- Open a single page and navigate it
- Serve that page to the locator as snapshot provider and path evaluator

A Session owns one tab. Close releases the tab, the browser connection and,
for local launches, the browser process.
*/

type Options struct {
	Headless          bool
	ControlURL        string
	NavigationTimeout time.Duration
}

type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	opts     Options
}

var _ locator.Page = (*Session)(nil)

// Open connects to opts.ControlURL, or launches a local browser when it is
// empty, and opens a blank tab.
func Open(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{opts: opts}

	wsURL := opts.ControlURL
	if wsURL == "" {
		l := launcher.New().Headless(opts.Headless)
		u, err := l.Launch()
		if err != nil {
			return nil, &BrowserError{
				Message:   fmt.Sprintf("launch: %v", err),
				Retryable: false,
				Cause:     ErrCauseLaunchFailure,
			}
		}
		wsURL = u
		s.launcher = l
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		s.killLauncher()
		return nil, &BrowserError{
			Message:   fmt.Sprintf("connect %s: %v", wsURL, err),
			Retryable: true,
			Cause:     ErrCauseConnectFailure,
		}
	}
	s.browser = b

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		_ = s.Close()
		return nil, &BrowserError{
			Message:   fmt.Sprintf("create tab: %v", err),
			Retryable: true,
			Cause:     ErrCauseConnectFailure,
		}
	}
	s.page = page
	return s, nil
}

// Navigate loads pageURL and waits for the load event.
func (s *Session) Navigate(ctx context.Context, pageURL string) error {
	navCtx := ctx
	if s.opts.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, s.opts.NavigationTimeout)
		defer cancel()
	}

	p := s.page.Context(navCtx)
	if err := p.Navigate(pageURL); err != nil {
		return &BrowserError{
			Message:   fmt.Sprintf("navigate %s: %v", pageURL, err),
			Retryable: true,
			Cause:     ErrCauseNavigationFailure,
		}
	}
	if err := p.WaitLoad(); err != nil {
		return &BrowserError{
			Message:   fmt.Sprintf("wait load %s: %v", pageURL, err),
			Retryable: true,
			Cause:     ErrCauseNavigationFailure,
		}
	}
	return nil
}

func (s *Session) Evaluate(ctx context.Context, expr string) (*locator.EvalResult, error) {
	res, err := s.page.Context(ctx).Eval(evaluateScript, expr)
	if err != nil {
		return nil, &BrowserError{Message: err.Error(), Retryable: true, Cause: ErrCauseEvalFailure}
	}
	return decodeEvalResult(res.Value)
}

func (s *Session) Snapshot(ctx context.Context) (locator.Snapshot, error) {
	res, err := s.page.Context(ctx).Eval(snapshotScript, snapshot.InteractiveSelector)
	if err != nil {
		return locator.Snapshot{}, &BrowserError{Message: err.Error(), Retryable: true, Cause: ErrCauseEvalFailure}
	}
	return decodeSnapshot(res.Value)
}

// HTML serializes the current document.
func (s *Session) HTML(ctx context.Context) ([]byte, error) {
	res, err := s.page.Context(ctx).Eval(outerHTMLScript)
	if err != nil {
		return nil, &BrowserError{Message: err.Error(), Retryable: true, Cause: ErrCauseEvalFailure}
	}
	return []byte(res.Value.Str()), nil
}

func (s *Session) Close() error {
	var firstErr error
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			firstErr = err
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.killLauncher()
	return firstErr
}

func (s *Session) killLauncher() {
	if s.launcher != nil {
		s.launcher.Kill()
	}
}
