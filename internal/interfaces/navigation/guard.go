package navigation

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

const LoginPage = "/pages/login/login"

// ErrRedirectedToLogin is returned by guarded navigation that was replaced with
// a redirect to the login page.
var ErrRedirectedToLogin = errors.New("navigation redirected to login")

// Navigator performs page transitions.
type Navigator interface {
	NavigateTo(ctx context.Context, target string) error
	RedirectTo(ctx context.Context, target string) error
	SwitchTab(ctx context.Context, target string) error
	ReLaunch(ctx context.Context, target string) error
}

// SessionChecker answers whether a user session is active.
type SessionChecker interface {
	IsLoggedIn(ctx context.Context) bool
}

type GuardConfig struct {
	Protected []string
	Public    []string
	LoginPage string
	Logger    *logging.Logger
}

func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Protected: []string{
			"pages/dashboard/dashboard",
			"pages/match/match",
			"pages/user/profile",
		},
		Public: []string{
			"pages/login/login",
			"pages/register/register",
		},
		LoginPage: LoginPage,
	}
}

// Guard keeps unauthenticated users away from protected pages.
type Guard struct {
	session   SessionChecker
	nav       Navigator
	protected []string
	public    []string
	loginPage string
	logger    *logging.Logger
}

func NewGuard(session SessionChecker, nav Navigator, cfg GuardConfig) *Guard {
	defaults := DefaultGuardConfig()
	if cfg.Protected == nil {
		cfg.Protected = defaults.Protected
	}
	if cfg.Public == nil {
		cfg.Public = defaults.Public
	}
	if strings.TrimSpace(cfg.LoginPage) == "" {
		cfg.LoginPage = defaults.LoginPage
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Guard{
		session:   session,
		nav:       nav,
		protected: cfg.Protected,
		public:    cfg.Public,
		loginPage: cfg.LoginPage,
		logger:    logger,
	}
}

// Check reports whether navigation to target may proceed. A protected target
// without a session triggers a redirect to the login page and reports false.
// Targets on neither list are allowed.
func (g *Guard) Check(ctx context.Context, target string) (bool, error) {
	ctx, span := startSpan(ctx, "navigation.Guard.Check")
	defer span.End()

	page := pagePath(target)
	span.SetAttributes(attribute.String("navigation.page", page))

	if matches(page, g.public) {
		return true, nil
	}
	if !matches(page, g.protected) {
		return true, nil
	}
	if g.session.IsLoggedIn(ctx) {
		return true, nil
	}

	g.logger.InfoContext(ctx, "blocked navigation to protected page", "page", page)
	if err := g.nav.RedirectTo(ctx, g.loginPage); err != nil {
		return false, err
	}
	return false, nil
}

// CheckCurrent applies the protected-page rule to the page already shown.
func (g *Guard) CheckCurrent(ctx context.Context, current string) (bool, error) {
	ctx, span := startSpan(ctx, "navigation.Guard.CheckCurrent")
	defer span.End()

	page := pagePath(current)
	if page == "" || !matches(page, g.protected) {
		return true, nil
	}
	if g.session.IsLoggedIn(ctx) {
		return true, nil
	}

	g.logger.InfoContext(ctx, "current page requires login", "page", page)
	if err := g.nav.RedirectTo(ctx, g.loginPage); err != nil {
		return false, err
	}
	return false, nil
}

// UnauthenticatedHandler redirects to the login page with the page returned by
// current as the return url.
func (g *Guard) UnauthenticatedHandler(current func() string) func(context.Context, error) {
	return func(ctx context.Context, cause error) {
		page := ""
		if current != nil {
			page = current()
		}
		g.logger.InfoContext(ctx, "session rejected by server, redirecting to login", "page", page, "error", cause)
		if err := g.nav.RedirectTo(ctx, g.UnauthenticatedRedirect(page)); err != nil {
			g.logger.WarnContext(ctx, "redirect to login failed", "error", err)
		}
	}
}

// Wrap returns a Navigator that checks every transition before delegating to nav.
func (g *Guard) Wrap(nav Navigator) Navigator {
	return &guardedNavigator{guard: g, next: nav}
}

// UnauthenticatedRedirect builds the configured login url carrying current as returnUrl.
func (g *Guard) UnauthenticatedRedirect(current string) string {
	returnURL := ""
	if current = strings.TrimSpace(current); current != "" {
		returnURL = "/" + strings.TrimPrefix(current, "/")
	}
	return g.loginPage + "?returnUrl=" + encodeURIComponent(returnURL)
}

type guardedNavigator struct {
	guard *Guard
	next  Navigator
}

func (n *guardedNavigator) NavigateTo(ctx context.Context, target string) error {
	return n.run(ctx, target, n.next.NavigateTo)
}

func (n *guardedNavigator) RedirectTo(ctx context.Context, target string) error {
	return n.run(ctx, target, n.next.RedirectTo)
}

func (n *guardedNavigator) SwitchTab(ctx context.Context, target string) error {
	return n.run(ctx, target, n.next.SwitchTab)
}

func (n *guardedNavigator) ReLaunch(ctx context.Context, target string) error {
	return n.run(ctx, target, n.next.ReLaunch)
}

func (n *guardedNavigator) run(ctx context.Context, target string, action func(context.Context, string) error) error {
	allowed, err := n.guard.Check(ctx, target)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRedirectedToLogin
	}
	return action(ctx, target)
}

func pagePath(target string) string {
	page, _, _ := strings.Cut(strings.TrimSpace(target), "?")
	return page
}

func matches(page string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern != "" && strings.Contains(page, pattern) {
			return true
		}
	}
	return false
}

func encodeURIComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
