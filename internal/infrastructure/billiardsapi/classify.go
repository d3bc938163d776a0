package billiardsapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

// Category groups request failures by how the client reacts to them.
type Category string

const (
	CategoryNetwork    Category = "network"
	CategoryServer     Category = "server"
	CategoryAuth       Category = "auth"
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "notFound"
	CategoryUnknown    Category = "unknown"
)

// ErrTransport marks failures where no HTTP response was obtained.
var ErrTransport = crerr.New("billiards api transport failure")

// HTTPError is a non-2xx response. Message comes from the body's "message" field when present.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("billiards api status=%d", e.Status)
	}
	return fmt.Sprintf("billiards api status=%d: %s", e.Status, e.Message)
}

// networkHints match case-sensitively, the way transport errors from browsers and
// proxies spell them. The other hints are matched against the lowercased message.
var (
	networkHints  = []string{"Failed to fetch", "Network", "网络"}
	authHints     = []string{"not logged in", "session expired", "未登录", "登录过期"}
	serverHints   = []string{"server error", "服务器错误"}
	notFoundHints = []string{"not found", "不存在", "未找到"}
)

// Classify maps err to a Category. Rules are checked in order and the first match wins.
// Cancellation by the caller is never treated as a network failure, and neither is
// anything that carries an HTTP response.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}
	if errors.Is(err, context.Canceled) {
		return CategoryUnknown
	}

	var httpErr *HTTPError
	gotResponse := errors.As(err, &httpErr)
	if !gotResponse {
		if isTransport(err) || containsAny(err.Error(), networkHints) {
			return CategoryNetwork
		}
	} else {
		switch {
		case httpErr.Status == http.StatusUnauthorized || httpErr.Status == http.StatusForbidden:
			return CategoryAuth
		case httpErr.Status == http.StatusBadRequest:
			return CategoryValidation
		case httpErr.Status == http.StatusNotFound:
			return CategoryNotFound
		case httpErr.Status >= http.StatusInternalServerError:
			return CategoryServer
		}
	}

	message := strings.ToLower(err.Error())
	switch {
	case containsAny(message, authHints):
		return CategoryAuth
	case containsAny(message, serverHints):
		return CategoryServer
	case containsAny(message, notFoundHints):
		return CategoryNotFound
	}
	return CategoryUnknown
}

// UserMessage is the notice shown for a terminal failure. Validation and unknown
// failures have none; the server's own message is used for those.
func (c Category) UserMessage() string {
	switch c {
	case CategoryNetwork:
		return "network connection failed, check your network settings"
	case CategoryServer:
		return "server temporarily unavailable, please retry later"
	case CategoryAuth:
		return "login expired, please sign in again"
	case CategoryNotFound:
		return "requested resource does not exist"
	default:
		return ""
	}
}

// Sentinel is the use case error a terminal failure of this category surfaces as.
// Unknown failures have none.
func (c Category) Sentinel() error {
	switch c {
	case CategoryNetwork, CategoryServer:
		return usecase.ErrDependencyUnavailable
	case CategoryAuth:
		return usecase.ErrUnauthorized
	case CategoryValidation:
		return usecase.ErrInvalidInput
	case CategoryNotFound:
		return usecase.ErrNotFound
	default:
		return nil
	}
}

// withSentinel keeps err reachable through errors.As while adding the use case sentinel.
func withSentinel(category Category, err error) error {
	sentinel := category.Sentinel()
	if sentinel == nil {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func notificationText(category Category, err error) string {
	if msg := category.UserMessage(); msg != "" {
		return msg
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return "unknown error"
}

func isTransport(err error) bool {
	if crerr.Is(err, ErrTransport) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func containsAny(value string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(value, hint) {
			return true
		}
	}
	return false
}
