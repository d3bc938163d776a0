package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/billiards-tracker/internal/app"
	"github.com/riskibarqy/billiards-tracker/internal/config"
	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/infrastructure/netstate"
	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
	"github.com/riskibarqy/billiards-tracker/internal/platform/notify"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("sid")
		loggedIn := err == nil

		switch r.URL.Path {
		case "/api/auth/status":
			if loggedIn {
				_, _ = io.WriteString(w, `{"success":true,"loggedIn":true}`)
				return
			}
			_, _ = io.WriteString(w, `{"success":true,"loggedIn":false}`)
		case "/api/auth/login":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"password":"secret1"`) {
				_, _ = io.WriteString(w, `{"success":false,"message":"wrong password"}`)
				return
			}
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "s1", Path: "/"})
			_, _ = io.WriteString(w, `{"success":true,"user":{"username":"alice","organization":"Cue Club","matches":3,"winMatches":2,"lossMatches":1}}`)
		case "/api/auth/current":
			if !loggedIn {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"message":"not logged in"}`)
				return
			}
			_, _ = io.WriteString(w, `{"success":true,"user":{"username":"alice","organization":"Cue Club","matches":3,"winMatches":2,"lossMatches":1}}`)
		case "/api/users":
			_, _ = io.WriteString(w, `{"success":true,"users":[{"username":"alice","matches":3,"winMatches":2,"lossMatches":1},{"username":"bob","matches":2,"winMatches":2}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"not found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCLI(t *testing.T, baseURL string) (*cli, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return newTestCLIWithStore(t, baseURL, kv.NewMemory())
}

// newTestCLIWithStore shares store between CLI runs the way one badger directory
// is shared between separate invocations.
func newTestCLIWithStore(t *testing.T, baseURL string, store kv.Store) (*cli, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := newCLI(&out, &errOut)
	c.loadConfig = func() (config.Config, error) {
		return config.Config{
			AppEnv:              config.EnvDev,
			APIBaseURLs:         []string{baseURL},
			HTTPTimeout:         2 * time.Second,
			ProbeTimeout:        time.Second,
			ConnectionFreshness: time.Minute,
			ProbeWait:           time.Second,
			ReconnectSettle:     10 * time.Millisecond,
			ReconnectSupersede:  time.Second,
			Storage:             config.StorageMemory,
			RecordBackend:       config.RecordBackendKV,
			LogLevel:            logging.LevelError,
		}, nil
	}
	c.buildContainer = func(ctx context.Context, cfg config.Config, logger *logging.Logger, out io.Writer) (*app.Container, error) {
		return app.New(ctx, app.Options{
			Config:       cfg,
			Logger:       logger,
			Out:          out,
			Notifier:     &notify.Recorder{},
			Store:        store,
			Connectivity: netstate.NewStatic(true),
		})
	}
	t.Cleanup(func() { _ = c.close() })
	return c, &out, &errOut
}

func run(c *cli, args ...string) error {
	root := newRootCmd(c)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestCLI_LoginThenWhoami(t *testing.T) {
	srv := fakeBackend(t)
	c, out, errOut := newTestCLI(t, srv.URL)

	require.NoError(t, run(c, "login", "alice", "secret1"))
	assert.Contains(t, out.String(), "logged in as alice")
	assert.Contains(t, errOut.String(), "-> redirect "+pageDashboard)

	out.Reset()
	require.NoError(t, run(c, "whoami"))
	assert.Contains(t, out.String(), "username:      alice")
	assert.Contains(t, out.String(), "organization:  Cue Club")
}

func TestCLI_WrongPasswordKeepsSessionEmpty(t *testing.T) {
	srv := fakeBackend(t)
	c, _, _ := newTestCLI(t, srv.URL)

	err := run(c, "login", "alice", "nope")
	require.Error(t, err)
	assert.Equal(t, "wrong password", err.Error())
	assert.False(t, c.container.Sessions.IsLoggedIn(context.Background()))
}

func TestCLI_ProtectedPageRedirectsToLogin(t *testing.T) {
	srv := fakeBackend(t)
	c, _, errOut := newTestCLI(t, srv.URL)

	err := run(c, "dashboard")
	require.ErrorIs(t, err, errLoginRequired)
	assert.Equal(t, "/pages/login/login", c.container.Navigator.Current())
	assert.Contains(t, errOut.String(), "-> redirect /pages/login/login")
}

func TestCLI_DashboardRanksPlayers(t *testing.T) {
	srv := fakeBackend(t)
	c, out, _ := newTestCLI(t, srv.URL)

	require.NoError(t, run(c, "login", "alice", "secret1"))
	out.Reset()
	require.NoError(t, run(c, "dashboard"))

	board := out.String()
	assert.Contains(t, board, "signed in as alice")
	assert.Regexp(t, `(?m)^1\s+bob\s`, board, "bob has the better win rate")
	assert.Regexp(t, `(?m)^2\s+alice\s`, board)
}

func TestCLI_LocalStoreFlow(t *testing.T) {
	srv := fakeBackend(t)
	c, out, _ := newTestCLI(t, srv.URL)

	require.NoError(t, run(c, "local", "register", "carol", "secret1", "--org", "Break Room"))
	assert.Contains(t, out.String(), "user created")

	err := run(c, "local", "register", "carol", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")

	require.NoError(t, run(c, "local", "login", "carol", "secret1"))
	out.Reset()
	require.NoError(t, run(c, "local", "match", "carol", "--result", "win", "--frames-won", "5", "--frames-lost", "3", "--mvp"))
	assert.Contains(t, out.String(), "matches:       1 (1 won, 0 lost)")
	assert.Contains(t, out.String(), "mvp:           1")

	current, ok := c.container.Accounts.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, 5, current.Wins)
}

func TestCLI_LocalStoreSurvivesSeparateRuns(t *testing.T) {
	srv := fakeBackend(t)
	store := kv.NewMemory()

	first, out, _ := newTestCLIWithStore(t, srv.URL, store)
	require.NoError(t, run(first, "local", "register", "carol", "secret1", "--org", "Break Room"))
	assert.Contains(t, out.String(), "user created")
	require.NoError(t, first.close())

	second, _, _ := newTestCLIWithStore(t, srv.URL, store)
	require.NoError(t, run(second, "local", "login", "carol", "secret1"))
	require.NoError(t, second.close())

	third, out, _ := newTestCLIWithStore(t, srv.URL, store)
	require.NoError(t, run(third, "local", "whoami"))
	assert.Contains(t, out.String(), "carol")

	out.Reset()
	require.NoError(t, run(third, "local", "users"))
	assert.Contains(t, out.String(), "carol")
}

func TestExplain(t *testing.T) {
	t.Parallel()

	assert.NoError(t, explain(nil))
	assert.ErrorIs(t, explain(fmt.Errorf("current user: %w", usecase.ErrUnauthorized)), errLoginRequired)

	offline := explain(fmt.Errorf("list users: %w", usecase.ErrDependencyUnavailable))
	assert.ErrorIs(t, offline, errServiceDegraded)
	assert.ErrorIs(t, offline, usecase.ErrDependencyUnavailable)

	plain := errors.New("wrong password")
	assert.Equal(t, plain, explain(plain))
}

func TestMatchInput(t *testing.T) {
	t.Parallel()

	input := matchInput{result: "LOSS", framesWon: 2, framesLost: 5, scoreFor: 40, scoreAgainst: 70}
	require.NoError(t, input.validate())

	got := input.apply(user.Stats{Matches: 1, WinMatches: 1, Wins: 5})
	assert.Equal(t, user.Stats{Matches: 2, Wins: 7, Losses: 5, WinMatches: 1, LossMatches: 1, ScoreFor: 40, ScoreAgainst: 70}, got)

	bad := matchInput{result: "draw"}
	assert.Error(t, bad.validate())
	negative := matchInput{result: "win", framesWon: -1}
	assert.Error(t, negative.validate())
}
