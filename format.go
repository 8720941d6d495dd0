package tourneycore

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// FormatStandings renders the current standings as an ASCII table to w, the
// same reporting idiom the teacher tool's FormatPlayers uses for its own
// output.
func (t *Tournament) FormatStandings(w io.Writer, activeOnly bool) {
	standings := t.Standings(activeOnly)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Player", "Points", "OMW%", "GW%", "OGW%"})
	table.SetAutoFormatHeaders(false)

	for i, p := range standings {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			p.Alias,
			fmt.Sprintf("%.1f", p.MatchPoints),
			fmt.Sprintf("%.3f", p.Tiebreakers.OpponentMatchWinPct),
			fmt.Sprintf("%.3f", p.Tiebreakers.GameWinPct),
			fmt.Sprintf("%.3f", p.Tiebreakers.OpponentGameWinPct),
		})
	}
	table.Render()
}

// FormatRound renders every match scheduled for round as an ASCII table to
// w, the per-round pairing sheet a tournament organizer would print or post.
func (t *Tournament) FormatRound(w io.Writer, round int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Table", "Player One", "Player Two", "Result"})
	table.SetAutoFormatHeaders(false)

	for _, mid := range t.matchOrder {
		m := t.matches[mid]
		if m.Round != round {
			continue
		}
		two := "(bye)"
		if m.PlayerTwo != noneID {
			two = t.aliasOf(m.PlayerTwo)
		}
		result := "pending"
		if m.Reported {
			result = fmt.Sprintf("%d-%d-%d", m.Result.PlayerOneWins, m.Result.PlayerTwoWins, m.Result.Draws)
		}
		table.Append([]string{
			fmt.Sprintf("%d", m.MatchNumber),
			t.aliasOf(m.PlayerOne),
			two,
			result,
		})
	}
	table.Render()
}

func (t *Tournament) aliasOf(id PlayerID) string {
	if id == noneID {
		return "(bye)"
	}
	if p, ok := t.players[id]; ok {
		return p.Alias
	}
	return string(id)
}
