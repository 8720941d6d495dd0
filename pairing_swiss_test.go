package tourneycore

import "testing"

func TestSwissOddFieldGetsOneBye(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss, Rounds: 3})
	addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h", "i")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	var byes int
	for _, m := range tour.Matches() {
		if m.IsBye {
			byes++
		}
	}
	if byes != 1 {
		t.Fatalf("expected exactly 1 bye in a 9-player round, got %d", byes)
	}
}

func TestSwissAvoidsRematchWhenPossible(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss, Rounds: 3})
	addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	reportAllActive(tour, 2, 0)
	if err := tour.NextRound(); err != nil {
		t.Fatal(err)
	}

	seen := map[[2]PlayerID]bool{}
	for _, m := range tour.Matches() {
		if m.PlayerTwo == noneID {
			continue
		}
		key := [2]PlayerID{m.PlayerOne, m.PlayerTwo}
		rkey := [2]PlayerID{m.PlayerTwo, m.PlayerOne}
		if seen[key] || seen[rkey] {
			t.Fatalf("round-2 rematch found: %v vs %v", m.PlayerOne, m.PlayerTwo)
		}
		seen[key] = true
	}
}

// TestGreedySwissMatchBacktracksOffAnAvoidableRematch reproduces a pool
// ordering where a single left-to-right pass locks in an avoidable
// rematch: only B and D have played before, but matching A with C first
// (the first fresh candidate a naive scan finds) forces the leftover pair
// B-D together even though A-B/C-D is fully repeat-free.
func TestGreedySwissMatchBacktracksOffAnAvoidableRematch(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss})
	a := &Player{ID: "A"}
	b := &Player{ID: "B", Results: []ResultEntry{{OpponentID: "D"}}}
	c := &Player{ID: "C"}
	d := &Player{ID: "D", Results: []ResultEntry{{OpponentID: "B"}}}
	for _, p := range []*Player{a, b, c, d} {
		tour.players[p.ID] = p
	}

	pairs := tour.greedySwissMatch([]*Player{a, c, b, d})
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	for _, pr := range pairs {
		if (pr.a.ID == "B" && pr.b.ID == "D") || (pr.a.ID == "D" && pr.b.ID == "B") {
			t.Fatalf("expected the backtracking search to avoid the B-D rematch, got %+v", pairs)
		}
	}
}

func TestSwissByeGoesToLowestRankedUndrafted(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss, Rounds: 3})
	ids := addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h", "i")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	var firstByeWinner PlayerID
	for _, m := range tour.Matches() {
		if m.IsBye {
			firstByeWinner = m.PlayerOne
		}
	}
	if firstByeWinner != ids[len(ids)-1] {
		t.Fatalf("expected the lowest-seeded player (%v) to receive round 1's bye, got %v", ids[len(ids)-1], firstByeWinner)
	}
}
