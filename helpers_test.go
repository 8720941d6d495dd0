package tourneycore

import "strconv"

// sequentialIDs mints predictable "id-1", "id-2", ... identifiers so tests
// can assert on exact ids instead of matching patterns.
type sequentialIDs struct {
	n int
}

func (s *sequentialIDs) NewID() string {
	s.n++
	return "id-" + strconv.Itoa(s.n)
}

func newTestTournament(cfg TournamentConfig) *Tournament {
	return NewTournament(cfg, &sequentialIDs{})
}

func addPlayers(t *Tournament, aliases ...string) []PlayerID {
	ids := make([]PlayerID, len(aliases))
	for i, a := range aliases {
		id, err := t.AddPlayer(a, i+1)
		if err != nil {
			panic(err)
		}
		ids[i] = id
	}
	return ids
}

func reportAllActive(t *Tournament, p1Wins, p2Wins int) {
	for _, m := range t.Matches() {
		if m.Active {
			_ = t.ReportResult(m.ID, Result{PlayerOneWins: p1Wins, PlayerTwoWins: p2Wins})
		}
	}
}
