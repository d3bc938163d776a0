package billiardsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "transport marker", err: crerr.Mark(errors.New("dial tcp: refused"), ErrTransport), want: CategoryNetwork},
		{name: "url error", err: &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}, want: CategoryNetwork},
		{name: "failed to fetch text", err: errors.New("Failed to fetch"), want: CategoryNetwork},
		{name: "chinese network text", err: errors.New("网络异常"), want: CategoryNetwork},
		{name: "network text is case sensitive", err: errors.New("invalid network name"), want: CategoryUnknown},
		{name: "400 mentioning network", err: &HTTPError{Status: 400, Message: "Network name is invalid"}, want: CategoryValidation},
		{name: "409 mentioning network", err: &HTTPError{Status: 409, Message: "Network busy"}, want: CategoryUnknown},
		{name: "caller cancelled", err: fmt.Errorf("send: %w", context.Canceled), want: CategoryUnknown},
		{name: "401", err: &HTTPError{Status: 401}, want: CategoryAuth},
		{name: "403", err: &HTTPError{Status: 403}, want: CategoryAuth},
		{name: "400", err: &HTTPError{Status: 400, Message: "user not found"}, want: CategoryValidation},
		{name: "404", err: &HTTPError{Status: 404}, want: CategoryNotFound},
		{name: "503", err: &HTTPError{Status: 503}, want: CategoryServer},
		{name: "wrapped http error", err: fmt.Errorf("login: %w", &HTTPError{Status: 500}), want: CategoryServer},
		{name: "auth text", err: errors.New("未登录"), want: CategoryAuth},
		{name: "session expired text", err: errors.New("session expired"), want: CategoryAuth},
		{name: "server text", err: &HTTPError{Status: 409, Message: "服务器错误"}, want: CategoryServer},
		{name: "not found text", err: errors.New("用户不存在"), want: CategoryNotFound},
		{name: "other", err: errors.New("boom"), want: CategoryUnknown},
		{name: "nil", err: nil, want: CategoryUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v)=%s want %s", tc.err, got, tc.want)
			}
		})
	}
}

func TestNotificationText(t *testing.T) {
	t.Parallel()

	if got := notificationText(CategoryAuth, &HTTPError{Status: 401}); got != CategoryAuth.UserMessage() {
		t.Fatalf("unexpected auth text: %s", got)
	}
	if got := notificationText(CategoryValidation, &HTTPError{Status: 400, Message: "username too short"}); got != "username too short" {
		t.Fatalf("unexpected validation text: %s", got)
	}
}

func TestWithSentinel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		err      error
		want     error
	}{
		{category: CategoryNetwork, err: &url.Error{Op: "Post", URL: "http://x/api/users", Err: errors.New("connection refused")}, want: usecase.ErrDependencyUnavailable},
		{category: CategoryServer, err: &HTTPError{Status: 502}, want: usecase.ErrDependencyUnavailable},
		{category: CategoryAuth, err: &HTTPError{Status: 401}, want: usecase.ErrUnauthorized},
		{category: CategoryValidation, err: &HTTPError{Status: 400, Message: "username too short"}, want: usecase.ErrInvalidInput},
		{category: CategoryNotFound, err: &HTTPError{Status: 404}, want: usecase.ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			got := withSentinel(tc.category, tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v in chain, got %v", tc.want, got)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("expected original error in chain, got %v", got)
			}
			if Classify(got) != tc.category {
				t.Fatalf("reclassified as %s, want %s", Classify(got), tc.category)
			}
		})
	}

	plain := errors.New("boom")
	if got := withSentinel(CategoryUnknown, plain); got != plain {
		t.Fatalf("expected unknown errors untouched, got %v", got)
	}
}
