// Package tourneycore runs a tournament's lifecycle in memory: Swiss,
// round-robin, double round-robin, and single/double elimination, including
// a Swiss or round-robin event that cuts to an elimination playoff stage.
//
// Core capabilities include:
//   - Swiss pairing by score group with no-repeat-opponent relaxation, byes,
//     and late entries backfilled per a configurable policy
//   - Round-robin and double round-robin scheduling via the circle method
//   - Single- and double-elimination bracket seeding, routing, and
//     withdrawal-safe edge collapse
//   - Recording match results at the game level with configurable points,
//     and erasing a reported result to correct a mistake
//   - Standings with the standard tiebreaker battery, configurable precedence
//
// Quick start:
//
//	t := tourneycore.NewTournament(tourneycore.TournamentConfig{
//		Format: tourneycore.FormatSwiss,
//	}, tourneycore.UUIDSupplier{})
//	for i, alias := range []string{"Ann", "Ben", "Cal", "Dee", "Eve", "Fay", "Gus", "Hal"} {
//		_, _ = t.AddPlayer(alias, i+1)
//	}
//	_ = t.Start() // Swiss needs at least 8 players
//	for _, m := range t.Matches() {
//		if m.PlayerTwo == "" {
//			continue
//		}
//		_ = t.ReportResult(m.ID, tourneycore.Result{PlayerOneWins: 2, PlayerTwoWins: 1})
//	}
//
// Every cross-reference - match to player, match to the match it feeds in a
// bracket - is by id, never by pointer, so that erasing a result or
// withdrawing a player is just editing a string field.
package tourneycore
