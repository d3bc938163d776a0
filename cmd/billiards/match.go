package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

const (
	resultWin  = "win"
	resultLoss = "loss"
)

// matchInput is one finished match from the player's point of view.
type matchInput struct {
	result       string
	framesWon    int
	framesLost   int
	scoreFor     int
	scoreAgainst int
	mvp          bool
}

func (m *matchInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.result, "result", "", "match result: win or loss")
	cmd.Flags().IntVar(&m.framesWon, "frames-won", 0, "frames won in the match")
	cmd.Flags().IntVar(&m.framesLost, "frames-lost", 0, "frames lost in the match")
	cmd.Flags().IntVar(&m.scoreFor, "score-for", 0, "points scored")
	cmd.Flags().IntVar(&m.scoreAgainst, "score-against", 0, "points conceded")
	cmd.Flags().BoolVar(&m.mvp, "mvp", false, "player was the match MVP")
}

func (m *matchInput) validate() error {
	m.result = strings.ToLower(strings.TrimSpace(m.result))
	if m.result != resultWin && m.result != resultLoss {
		return fmt.Errorf("--result must be %q or %q", resultWin, resultLoss)
	}
	for name, value := range map[string]int{
		"frames-won":    m.framesWon,
		"frames-lost":   m.framesLost,
		"score-for":     m.scoreFor,
		"score-against": m.scoreAgainst,
	} {
		if value < 0 {
			return fmt.Errorf("--%s must be >= 0", name)
		}
	}
	return nil
}

// apply adds the match to the running totals.
func (m matchInput) apply(stats user.Stats) user.Stats {
	stats.Matches++
	stats.Wins += m.framesWon
	stats.Losses += m.framesLost
	stats.ScoreFor += m.scoreFor
	stats.ScoreAgainst += m.scoreAgainst
	if m.result == resultWin {
		stats.WinMatches++
	} else {
		stats.LossMatches++
	}
	if m.mvp {
		stats.MVPCount++
	}
	return stats
}
