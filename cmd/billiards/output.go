package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

func printProfile(out io.Writer, p user.Profile) {
	organization := p.Organization
	if organization == "" {
		organization = "-"
	}
	fmt.Fprintf(out, "username:      %s\n", p.Username)
	fmt.Fprintf(out, "organization:  %s\n", organization)
	fmt.Fprintf(out, "matches:       %d (%d won, %d lost)\n", p.Matches, p.WinMatches, p.LossMatches)
	fmt.Fprintf(out, "frames:        %d won, %d lost\n", p.Wins, p.Losses)
	fmt.Fprintf(out, "score:         %d for, %d against\n", p.ScoreFor, p.ScoreAgainst)
	fmt.Fprintf(out, "mvp:           %d\n", p.MVPCount)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(out, "member since:  %s\n", p.CreatedAt.Format("2006-01-02"))
	}
}

func printUsers(out io.Writer, users []user.Profile) error {
	if len(users) == 0 {
		fmt.Fprintln(out, "no players")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tORGANIZATION\tMATCHES")
	for _, p := range users {
		fmt.Fprintf(w, "%s\t%s\t%d\n", p.Username, p.Organization, p.Matches)
	}
	return w.Flush()
}

// printLeaderboard orders players by match win rate, then by matches won.
func printLeaderboard(out io.Writer, users []user.Profile) error {
	if len(users) == 0 {
		fmt.Fprintln(out, "no players")
		return nil
	}
	ranked := append([]user.Profile(nil), users...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := winRate(ranked[i].Stats), winRate(ranked[j].Stats)
		if ri != rj {
			return ri > rj
		}
		return ranked[i].WinMatches > ranked[j].WinMatches
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tMATCHES\tW-L\tWIN%\tMVP")
	for i, p := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d-%d\t%.1f\t%d\n", i+1, p.Username, p.Matches, p.WinMatches, p.LossMatches, winRate(p.Stats)*100, p.MVPCount)
	}
	return w.Flush()
}

func winRate(s user.Stats) float64 {
	played := s.WinMatches + s.LossMatches
	if played == 0 {
		return 0
	}
	return float64(s.WinMatches) / float64(played)
}
