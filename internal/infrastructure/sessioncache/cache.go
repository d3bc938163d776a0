package sessioncache

import (
	"context"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

const (
	// Key is where the signed-in user lives in the key/value store.
	Key = "billiards_current_user"
	// LocalKey holds the user signed in against the local account store.
	LocalKey = "billiards_local_user"
)

// Cache mirrors the stored user in memory so reads never touch storage.
type Cache struct {
	store  kv.Store
	key    string
	logger *logging.Logger

	mu      sync.RWMutex
	current *user.Profile
}

// Load reads any persisted user under Key. A corrupt entry is logged and
// deleted, leaving the cache empty.
func Load(ctx context.Context, store kv.Store, logger *logging.Logger) (*Cache, error) {
	return LoadKey(ctx, store, Key, logger)
}

func LoadKey(ctx context.Context, store kv.Store, key string, logger *logging.Logger) (*Cache, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if key == "" {
		return nil, kv.ErrEmptyKey
	}
	c := &Cache{store: store, key: key, logger: logger}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, crerr.Wrap(err, "read session cache")
	}
	if !ok {
		return c, nil
	}

	var profile user.Profile
	if err := sonic.Unmarshal(raw, &profile); err != nil || profile.Username == "" {
		logger.WarnContext(ctx, "drop corrupt session cache entry", "key", key, "error", err)
		if delErr := store.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "delete corrupt session cache entry failed", "error", delErr)
		}
		return c, nil
	}

	c.current = &profile
	return c, nil
}

func (c *Cache) Current() (user.Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return user.Profile{}, false
	}
	return *c.current, true
}

// Save updates the in-memory copy first so a storage failure still leaves the
// process with the latest user.
func (c *Cache) Save(ctx context.Context, profile user.Profile) error {
	raw, err := sonic.Marshal(profile)
	if err != nil {
		return crerr.Wrap(err, "encode session user")
	}

	c.mu.Lock()
	c.current = &profile
	c.mu.Unlock()

	if err := c.store.Set(ctx, c.key, raw); err != nil {
		return crerr.Wrap(err, "persist session user")
	}
	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()

	if err := c.store.Delete(ctx, c.key); err != nil {
		return crerr.Wrap(err, "delete session user")
	}
	return nil
}
