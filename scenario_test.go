package tourneycore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSwissIntoSingleEliminationPlayoffs exercises the full lifecycle spec.md
// describes for a "cut to top 4" event: Swiss rounds, a rank-based cut,
// and a single-elimination playoff bracket that finishes the tournament.
func TestSwissIntoSingleEliminationPlayoffs(t *testing.T) {
	tour := newTestTournament(TournamentConfig{
		Format:   FormatSwiss,
		Rounds:   3,
		Playoffs: PlayoffSingleElim,
		Cut:      CutConfig{Type: CutRank, Limit: 4},
	})
	addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h")
	require.NoError(t, tour.Start())
	require.Equal(t, StatusActive, tour.Status())

	for round := 1; round <= tour.scheduledRounds; round++ {
		reportAllActive(tour, 2, 0)
		err := tour.NextRound()
		require.NoError(t, err, "round %d", round)
	}

	require.Equal(t, StatusPlayoffs, tour.Status())
	standings := tour.Standings(true)
	assert.Len(t, standings, 4, "cut to top 4 should leave exactly four active players")

	// Drive the single-elimination bracket to completion.
	for i := 0; i < 5; i++ {
		active := false
		for _, m := range tour.Matches() {
			if m.Active {
				active = true
				require.NoError(t, tour.ReportResult(m.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 0}))
			}
		}
		if !active {
			break
		}
	}
	assert.Equal(t, StatusFinished, tour.Status())
}

// TestCutByPointsKeepsOnlyThresholdOrBetter verifies a points-type cut
// admits only players whose match points meet the configured threshold,
// unlike a rank cut's fixed headcount.
func TestCutByPointsKeepsOnlyThresholdOrBetter(t *testing.T) {
	tour := newTestTournament(TournamentConfig{
		Format:   FormatSwiss,
		Rounds:   3,
		Playoffs: PlayoffSingleElim,
		Cut:      CutConfig{Type: CutPoints, Limit: 2},
	})
	addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h")
	require.NoError(t, tour.Start())

	for round := 1; round <= tour.scheduledRounds; round++ {
		reportAllActive(tour, 2, 0)
		require.NoError(t, tour.NextRound())
	}

	require.Equal(t, StatusPlayoffs, tour.Status())
	for _, p := range tour.Standings(true) {
		assert.GreaterOrEqual(t, p.MatchPoints, float64(2), "player %s below the cut threshold remained active", p.Alias)
	}
}

// TestWithdrawalDuringSwissForfeitsAndRemovesFromFuturePairing verifies a
// mid-round withdrawal forfeits the in-progress match and the player never
// reappears in a later round.
func TestWithdrawalDuringSwissForfeitsAndRemovesFromFuturePairing(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss, Rounds: 3})
	ids := addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h")
	require.NoError(t, tour.Start())

	victim := ids[0]
	require.NoError(t, tour.RemovePlayer(victim))

	p := tour.players[victim]
	assert.True(t, p.removed)
	assert.False(t, p.Active)

	require.NoError(t, tour.NextRound())
	for _, m := range tour.Matches() {
		if m.Round < tour.CurrentRound() {
			continue
		}
		assert.NotEqual(t, victim, m.PlayerOne)
		assert.NotEqual(t, victim, m.PlayerTwo)
	}
}

// TestEraseResultReturnsStandardMatchToPending asserts EraseResult rolls
// back a Swiss match's scoreboard contribution and reopens it for reporting.
func TestEraseResultReturnsStandardMatchToPending(t *testing.T) {
	tour := newTestTournament(TournamentConfig{Format: FormatSwiss, Rounds: 3})
	addPlayers(tour, "a", "b", "c", "d", "e", "f", "g", "h")
	require.NoError(t, tour.Start())

	var m Match
	for _, mt := range tour.Matches() {
		if mt.Active {
			m = mt
			break
		}
	}
	require.NoError(t, tour.ReportResult(m.ID, Result{PlayerOneWins: 2, PlayerTwoWins: 0}))

	winner := tour.players[m.PlayerOne]
	assert.Equal(t, tour.config.PointsForWin, winner.MatchPoints)

	require.NoError(t, tour.EraseResult(m.ID))
	assert.Equal(t, float64(0), winner.MatchPoints)
	assert.True(t, tour.matches[m.ID].Active)
	assert.False(t, tour.matches[m.ID].Reported)
}
