package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrInvalidRecord = errors.New("invalid user record")
)

// Stats holds the tournament counters tracked per player.
type Stats struct {
	Matches      int `json:"matches"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	WinMatches   int `json:"winMatches"`
	LossMatches  int `json:"lossMatches"`
	MVPCount     int `json:"mvpCount"`
	ScoreFor     int `json:"scoreFor"`
	ScoreAgainst int `json:"scoreAgainst"`
}

func (s Stats) validate() error {
	counters := []struct {
		name  string
		value int
	}{
		{"matches", s.Matches},
		{"wins", s.Wins},
		{"losses", s.Losses},
		{"winMatches", s.WinMatches},
		{"lossMatches", s.LossMatches},
		{"mvpCount", s.MVPCount},
		{"scoreFor", s.ScoreFor},
		{"scoreAgainst", s.ScoreAgainst},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %d", ErrInvalidRecord, c.name, c.value)
		}
	}
	return nil
}

// Record is the stored user including the credential. It never leaves the
// persistence boundary; reads hand out Profile.
type Record struct {
	Username     string
	Password     string
	Organization string
	Stats
	CreatedAt time.Time
}

func (r Record) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidRecord)
	}
	return r.Stats.validate()
}

// Profile returns the password-free projection.
func (r Record) Profile() Profile {
	return Profile{
		Username:     r.Username,
		Organization: r.Organization,
		Stats:        r.Stats,
		CreatedAt:    r.CreatedAt,
	}
}

// Profile is the read-facing user shared by the API, the session cache and the local store.
type Profile struct {
	Username     string
	Organization string
	Stats
	CreatedAt time.Time
}

type profileJSON struct {
	Username     string  `json:"username"`
	Organization *string `json:"organization"`
	Stats
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// MarshalJSON writes an empty organization as null.
func (p Profile) MarshalJSON() ([]byte, error) {
	out := profileJSON{Username: p.Username, Stats: p.Stats}
	if p.Organization != "" {
		org := p.Organization
		out.Organization = &org
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		out.CreatedAt = &createdAt
	}
	return sonic.Marshal(out)
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var in profileJSON
	if err := sonic.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Username = in.Username
	p.Organization = ""
	if in.Organization != nil {
		p.Organization = *in.Organization
	}
	p.Stats = in.Stats
	p.CreatedAt = time.Time{}
	if in.CreatedAt != nil {
		p.CreatedAt = *in.CreatedAt
	}
	return nil
}
