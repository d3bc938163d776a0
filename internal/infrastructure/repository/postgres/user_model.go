package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

type userTableModel struct {
	ID           int64          `db:"id"`
	Username     string         `db:"username"`
	Password     string         `db:"password"`
	Organization sql.NullString `db:"organization"`
	Matches      int            `db:"matches"`
	Wins         int            `db:"wins"`
	Losses       int            `db:"losses"`
	WinMatches   int            `db:"win_matches"`
	LossMatches  int            `db:"loss_matches"`
	MVPCount     int            `db:"mvp_count"`
	ScoreFor     int            `db:"score_for"`
	ScoreAgainst int            `db:"score_against"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (m userTableModel) toRecord() user.Record {
	return user.Record{
		Username:     m.Username,
		Password:     m.Password,
		Organization: nullStringToString(m.Organization),
		Stats: user.Stats{
			Matches:      m.Matches,
			Wins:         m.Wins,
			Losses:       m.Losses,
			WinMatches:   m.WinMatches,
			LossMatches:  m.LossMatches,
			MVPCount:     m.MVPCount,
			ScoreFor:     m.ScoreFor,
			ScoreAgainst: m.ScoreAgainst,
		},
		CreatedAt: m.CreatedAt,
	}
}

func recordArgs(record user.Record) map[string]any {
	return map[string]any{
		"username":      record.Username,
		"password":      record.Password,
		"organization":  stringToNullString(record.Organization),
		"matches":       record.Matches,
		"wins":          record.Wins,
		"losses":        record.Losses,
		"win_matches":   record.WinMatches,
		"loss_matches":  record.LossMatches,
		"mvp_count":     record.MVPCount,
		"score_for":     record.ScoreFor,
		"score_against": record.ScoreAgainst,
		"created_at":    record.CreatedAt,
	}
}
