package billiardsapi

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

// CookieKey is where session cookies are persisted in the key/value store.
const CookieKey = "billiards_session_cookies"

type storedCookie struct {
	URL      string    `json:"url"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// PersistentJar is a cookie jar whose contents survive process restarts, so
// separate CLI invocations share one backend session.
type PersistentJar struct {
	store  kv.Store
	logger *logging.Logger
	now    func() time.Time

	mu      sync.Mutex
	jar     *cookiejar.Jar
	entries map[string]storedCookie
}

func NewPersistentJar(ctx context.Context, store kv.Store, logger *logging.Logger) (*PersistentJar, error) {
	if logger == nil {
		logger = logging.Default()
	}
	jar, err := newCookieJar()
	if err != nil {
		return nil, err
	}

	j := &PersistentJar{
		store:   store,
		logger:  logger,
		now:     time.Now,
		jar:     jar,
		entries: make(map[string]storedCookie),
	}
	if err := j.load(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.jar.SetCookies(u, cookies)
	now := j.now()
	for _, cookie := range cookies {
		key := u.Host + "|" + cookie.Name
		expires := cookie.Expires
		if cookie.MaxAge > 0 {
			expires = now.Add(time.Duration(cookie.MaxAge) * time.Second)
		}
		if cookie.MaxAge < 0 || (!expires.IsZero() && !expires.After(now)) {
			delete(j.entries, key)
			continue
		}
		j.entries[key] = storedCookie{
			URL:      (&url.URL{Scheme: u.Scheme, Host: u.Host}).String(),
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Domain:   cookie.Domain,
			Expires:  expires,
			Secure:   cookie.Secure,
			HttpOnly: cookie.HttpOnly,
		}
	}
	// Persist under the lock so stored writes land in the same order as in-memory updates.
	if err := j.persistLocked(context.Background()); err != nil {
		j.logger.Warn("persist session cookies failed", "error", err)
	}
	j.mu.Unlock()
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Clear drops all cookies in memory and in storage.
func (j *PersistentJar) Clear(ctx context.Context) error {
	jar, err := newCookieJar()
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = jar
	j.entries = make(map[string]storedCookie)

	if err := j.store.Delete(ctx, CookieKey); err != nil {
		return crerr.Wrap(err, "delete session cookies")
	}
	return nil
}

func (j *PersistentJar) load(ctx context.Context) error {
	raw, ok, err := j.store.Get(ctx, CookieKey)
	if err != nil {
		return crerr.Wrap(err, "read session cookies")
	}
	if !ok {
		return nil
	}

	var stored []storedCookie
	if err := sonic.Unmarshal(raw, &stored); err != nil {
		j.logger.WarnContext(ctx, "drop corrupt session cookies", "error", err)
		return j.store.Delete(ctx, CookieKey)
	}

	now := j.now()
	for _, item := range stored {
		if !item.Expires.IsZero() && !item.Expires.After(now) {
			continue
		}
		u, err := url.Parse(item.URL)
		if err != nil || u.Host == "" {
			continue
		}
		j.jar.SetCookies(u, []*http.Cookie{{
			Name:     item.Name,
			Value:    item.Value,
			Path:     item.Path,
			Domain:   item.Domain,
			Expires:  item.Expires,
			Secure:   item.Secure,
			HttpOnly: item.HttpOnly,
		}})
		j.entries[u.Host+"|"+item.Name] = item
	}
	return nil
}

func (j *PersistentJar) persistLocked(ctx context.Context) error {
	if len(j.entries) == 0 {
		return j.store.Delete(ctx, CookieKey)
	}
	cookies := make([]storedCookie, 0, len(j.entries))
	for _, item := range j.entries {
		cookies = append(cookies, item)
	}
	raw, err := sonic.Marshal(cookies)
	if err != nil {
		return crerr.Wrap(err, "encode session cookies")
	}
	return j.store.Set(ctx, CookieKey, raw)
}

func newCookieJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, crerr.Wrap(err, "create cookie jar")
	}
	return jar, nil
}
