package tourneycore

import "testing"

func TestSingleEliminationSeedOrderForEight(t *testing.T) {
	got := standardSeedOrder(8)
	want := []int{1, 8, 4, 5, 2, 7, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seed order mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16}
	for n, want := range cases {
		if got := nextPowerOfTwo(n); got != want {
			t.Fatalf("nextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestSingleEliminationTopSeedsGetByes(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSingleElim})
	addPlayers(tour, "a", "b", "c", "d", "e") // 5 players -> size 8, 3 byes
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	var byes int
	for _, m := range tour.Matches() {
		if m.Round == 1 && m.IsBye {
			byes++
		}
	}
	if byes != 3 {
		t.Fatalf("expected 3 round-1 byes for 5 players in an 8-slot bracket, got %d", byes)
	}
}

func TestSingleEliminationChampionReachedForPowerOfTwoField(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSingleElim})
	addPlayers(tour, "a", "b", "c", "d")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	// Round 1: two matches.
	for _, m := range tour.Matches() {
		if m.Active {
			if err := tour.ReportResult(m.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 0}); err != nil {
				t.Fatal(err)
			}
		}
	}
	var final *Match
	for _, m := range tour.Matches() {
		if m.ID == tour.finalMatch {
			mCopy := m
			final = &mCopy
		}
	}
	if final == nil {
		t.Fatal("final match not found")
	}
	if !final.Active {
		t.Fatal("expected the final to be active once both semifinal winners advanced")
	}
	if err := tour.ReportResult(final.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 1}); err != nil {
		t.Fatal(err)
	}
	if tour.Status() != StatusFinished {
		t.Fatalf("expected StatusFinished, got %v", tour.Status())
	}
}

func TestMatchesExposeWinnersPath(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSingleElim})
	addPlayers(tour, "a", "b", "c", "d")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	for _, m := range tour.Matches() {
		if m.ID == tour.finalMatch {
			if m.WinnersPath != noneID {
				t.Fatalf("expected the final's WinnersPath to be noneID, got %v", m.WinnersPath)
			}
			continue
		}
		if m.WinnersPath != tour.finalMatch {
			t.Fatalf("expected semifinal %v's WinnersPath to point at the final %v, got %v", m.ID, tour.finalMatch, m.WinnersPath)
		}
	}
	got, ok := tour.Match(tour.finalMatch)
	if !ok || got.ID != tour.finalMatch {
		t.Fatalf("Match(finalMatch) = %v, %v", got, ok)
	}
}

func TestDoubleEliminationBracketResetOnLosersWin(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatDoubleElim})
	addPlayers(tour, "a", "b", "c", "d")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}

	// Drive the whole bracket: report every active match, repeatedly, until
	// the grand final is reached. Loser-side player always wins their
	// matches so they arrive at the grand final unbeaten-in-losers.
	for i := 0; i < 10; i++ {
		active := false
		for _, m := range tour.Matches() {
			if m.Active && !m.IsGrandFinal && !m.IsResetMatch {
				active = true
				if err := tour.ReportResult(m.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 0}); err != nil {
					t.Fatal(err)
				}
			}
		}
		if !active {
			break
		}
	}

	gf := tour.matches[tour.finalMatch]
	if gf == nil || !gf.IsGrandFinal {
		t.Fatalf("expected finalMatch to be the grand final, got %+v", gf)
	}
	if !gf.Active {
		t.Fatal("expected grand final to be active once both brackets finished")
	}

	// The losers-bracket entrant (PlayerTwo, by construction) wins game one.
	if err := tour.ReportResult(gf.ID, Result{PlayerOneWins: 0, PlayerTwoWins: 2}); err != nil {
		t.Fatal(err)
	}
	if tour.Status() != StatusPlayoffs && tour.Status() != StatusActive {
		t.Fatalf("expected the tournament still in progress after a bracket reset trigger, got %v", tour.Status())
	}
	reset := tour.matches[gf.ResetMatch]
	if !reset.Active {
		t.Fatal("expected the bracket-reset match to activate")
	}
	if err := tour.ReportResult(reset.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 0}); err != nil {
		t.Fatal(err)
	}
	if tour.Status() != StatusFinished {
		t.Fatalf("expected StatusFinished after the reset match, got %v", tour.Status())
	}
}

// TestReportResultRejectsTiedCorrectionWithoutMutating verifies that
// correcting an already-reported elimination match with an invalid (tied)
// result is rejected before anything is erased, leaving the original result
// and its advancement fully intact.
func TestReportResultRejectsTiedCorrectionWithoutMutating(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSingleElim})
	addPlayers(tour, "a", "b", "c", "d")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	var firstMatch MatchID
	for _, m := range tour.Matches() {
		if m.Active {
			firstMatch = m.ID
			break
		}
	}
	if err := tour.ReportResult(firstMatch, Result{PlayerOneWins: 2, PlayerTwoWins: 0}); err != nil {
		t.Fatal(err)
	}
	winner := tour.matches[firstMatch].PlayerOne
	final := tour.matches[tour.finalMatch]
	if final.PlayerOne != winner && final.PlayerTwo != winner {
		t.Fatal("expected the winner to have advanced into the final")
	}

	if err := tour.ReportResult(firstMatch, Result{PlayerOneWins: 1, PlayerTwoWins: 1}); err == nil {
		t.Fatal("expected an error correcting an elimination match to a tie")
	}

	m := tour.matches[firstMatch]
	if !m.Reported || m.Result.PlayerOneWins != 2 || m.Result.PlayerTwoWins != 0 {
		t.Fatalf("expected the original result to remain intact after a rejected correction, got %+v", m.Result)
	}
	final = tour.matches[tour.finalMatch]
	if final.PlayerOne != winner && final.PlayerTwo != winner {
		t.Fatal("expected the winner to remain advanced into the final after a rejected correction")
	}
}

func TestEraseEliminationResultRetractsAdvancement(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSingleElim})
	addPlayers(tour, "a", "b", "c", "d")
	if err := tour.Start(); err != nil {
		t.Fatal(err)
	}
	var firstMatch MatchID
	for _, m := range tour.Matches() {
		if m.Active {
			firstMatch = m.ID
			break
		}
	}
	if err := tour.ReportResult(firstMatch, Result{PlayerOneWins: 2, PlayerTwoWins: 0}); err != nil {
		t.Fatal(err)
	}
	winner := tour.matches[firstMatch].PlayerOne
	final := tour.matches[tour.finalMatch]
	if final.PlayerOne != winner && final.PlayerTwo != winner {
		t.Fatal("expected the winner to have advanced into the final")
	}

	if err := tour.EraseResult(firstMatch); err != nil {
		t.Fatal(err)
	}
	final = tour.matches[tour.finalMatch]
	if final.PlayerOne == winner || final.PlayerTwo == winner {
		t.Fatal("expected the winner to be retracted from the final after erase")
	}
	if !tour.matches[firstMatch].Active {
		t.Fatal("expected the original match to be active again after erase")
	}
}
