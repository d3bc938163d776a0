package keyvalue

import (
	"context"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
)

// UsersKey holds the whole user table as one JSON array in insertion order.
const UsersKey = "billiards_users"

type userRow struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Organization string `json:"organization,omitempty"`
	user.Stats
	CreatedAt time.Time `json:"createdAt"`
}

func toRow(r user.Record) userRow {
	return userRow{
		Username:     r.Username,
		Password:     r.Password,
		Organization: r.Organization,
		Stats:        r.Stats,
		CreatedAt:    r.CreatedAt,
	}
}

func (r userRow) record() user.Record {
	return user.Record{
		Username:     r.Username,
		Password:     r.Password,
		Organization: r.Organization,
		Stats:        r.Stats,
		CreatedAt:    r.CreatedAt,
	}
}

// UserRepository keeps user records in a kv.Store so they outlive the process.
// Writes are read-modify-write on a single key and serialised within the process.
type UserRepository struct {
	mu    sync.Mutex
	store kv.Store
}

func NewUserRepository(store kv.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, record user.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(rows, record.Username) >= 0 {
		return user.ErrUsernameTaken
	}
	return r.save(ctx, append(rows, toRow(record)))
}

func (r *UserRepository) Get(ctx context.Context, username string) (user.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx)
	if err != nil {
		return user.Record{}, false, err
	}
	i := indexOf(rows, username)
	if i < 0 {
		return user.Record{}, false, nil
	}
	return rows[i].record(), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]user.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, record user.Record) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf(rows, record.Username)
	if i < 0 {
		return false, nil
	}
	rows[i] = toRow(record)
	return true, r.save(ctx, rows)
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(rows, username)
	if i < 0 {
		return nil
	}
	return r.save(ctx, append(rows[:i], rows[i+1:]...))
}

// load fails on a corrupt table instead of treating it as empty, so a later
// write cannot wipe every stored user.
func (r *UserRepository) load(ctx context.Context) ([]userRow, error) {
	raw, ok, err := r.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, crerr.Wrap(err, "read user table")
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var rows []userRow
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, crerr.Wrapf(err, "decode user table %s", UsersKey)
	}
	return rows, nil
}

func (r *UserRepository) save(ctx context.Context, rows []userRow) error {
	if rows == nil {
		rows = []userRow{}
	}
	raw, err := sonic.Marshal(rows)
	if err != nil {
		return crerr.Wrap(err, "encode user table")
	}
	if err := r.store.Set(ctx, UsersKey, raw); err != nil {
		return crerr.Wrap(err, "write user table")
	}
	return nil
}

func indexOf(rows []userRow, username string) int {
	for i, row := range rows {
		if row.Username == username {
			return i
		}
	}
	return -1
}
