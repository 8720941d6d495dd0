package tourneycore

import (
	"math"
	"sort"
)

// swissAutoRounds implements the default round count, ceil(log2(n)).
func swissAutoRounds(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n))))
}

type swissPairing struct {
	a, b *Player
}

// pairSwissRound generates one round of Swiss pairings: players are split
// into score groups by MatchPoints, an odd group floats its lowest-ranked
// member into the next group, and each group is greedily matched preferring
// opponents not yet faced. The bye (if the active field is odd) goes to the
// lowest-ranked player who has not yet received one.
func (t *Tournament) pairSwissRound() error {
	if t.currentRound == 1 {
		if t.config.Rounds > 0 {
			t.scheduledRounds = t.config.Rounds
		} else {
			t.scheduledRounds = swissAutoRounds(len(t.activePlayers()))
		}
	}

	players := t.activePlayers()
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].MatchPoints != players[j].MatchPoints {
			return players[i].MatchPoints > players[j].MatchPoints
		}
		return players[i].Seed < players[j].Seed
	})

	paired := map[PlayerID]bool{}
	var byePlayer *Player
	if len(players)%2 == 1 {
		for i := len(players) - 1; i >= 0; i-- {
			if !players[i].PairingBye {
				byePlayer = players[i]
				break
			}
		}
		if byePlayer == nil {
			byePlayer = players[len(players)-1]
		}
		paired[byePlayer.ID] = true
	}

	groups := swissScoreGroups(players, paired)

	var pairings []swissPairing
	var floater *Player
	for _, g := range groups {
		pool := g
		if floater != nil {
			pool = append([]*Player{floater}, pool...)
			floater = nil
		}
		if len(pool)%2 == 1 {
			floater = pool[len(pool)-1]
			pool = pool[:len(pool)-1]
		}
		pairings = append(pairings, t.greedySwissMatch(pool)...)
	}
	if floater != nil {
		return &RoutingError{Reason: "swiss pairing left a player unmatched"}
	}

	for _, pr := range pairings {
		m := &Match{
			ID:        t.newMatchID(),
			Round:     t.currentRound,
			PlayerOne: pr.a.ID,
			PlayerTwo: pr.b.ID,
			Active:    true,
		}
		t.addMatch(m)
	}
	if byePlayer != nil {
		m := &Match{
			ID:        t.newMatchID(),
			Round:     t.currentRound,
			PlayerOne: byePlayer.ID,
			PlayerTwo: noneID,
			Active:    false,
		}
		t.addMatch(m)
	}
	return nil
}

// swissScoreGroups partitions players (already sorted by MatchPoints desc)
// into contiguous groups of equal MatchPoints, skipping already-paired
// (bye) players.
func swissScoreGroups(players []*Player, paired map[PlayerID]bool) [][]*Player {
	var groups [][]*Player
	var cur []*Player
	haveCur := false
	var curPoints float64
	for _, p := range players {
		if paired[p.ID] {
			continue
		}
		if !haveCur || p.MatchPoints != curPoints {
			if len(cur) > 0 {
				groups = append(groups, cur)
			}
			cur = []*Player{p}
			curPoints = p.MatchPoints
			haveCur = true
		} else {
			cur = append(cur, p)
		}
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// swissMatchBacktrackBudget bounds how many recursive calls
// backtrackSwissMatch may spend searching a single score group before
// giving up and falling back to firstFitSwissMatch. A repeat-free perfect
// matching, if one exists, is typically found in a handful of calls; the
// budget only guards against a pathologically large, heavily-intertwined
// group blowing up the search.
const swissMatchBacktrackBudget = 20000

// greedySwissMatch pairs an even-length pool, preferring a matching with no
// repeated opponent at all over one that locks in an avoidable rematch. A
// single left-to-right pass can do the latter: in a pool ordered
// [A,C,B,D] where only B and D have played before, pairing A with C first
// (the first fresh candidate for A) forces the leftover B-D pair into a
// rematch, even though A-B/C-D is fully repeat-free. backtrackSwissMatch
// first searches for a repeat-free matching and only if none exists
// searches again with rematches allowed; firstFitSwissMatch is only a
// fallback if the shared search budget runs out.
func (t *Tournament) greedySwissMatch(pool []*Player) []swissPairing {
	budget := swissMatchBacktrackBudget
	for _, allowRematch := range [2]bool{false, true} {
		if pairs, ok := t.backtrackSwissMatch(pool, allowRematch, &budget); ok {
			return pairs
		}
	}
	return t.firstFitSwissMatch(pool)
}

// backtrackSwissMatch recursively pairs pool[0] against every remaining
// candidate, trying every fresh opponent before trying any rematch, and
// backtracks on failure instead of committing irrevocably to its first
// pick. With allowRematch false only fresh opponents are tried, so it
// finds a fully repeat-free matching whenever one exists anywhere in the
// pool, per spec.md §8's "no opponent pair repeats unless a repeat-free
// pairing is infeasible."
func (t *Tournament) backtrackSwissMatch(pool []*Player, allowRematch bool, budget *int) ([]swissPairing, bool) {
	if len(pool) == 0 {
		return nil, true
	}
	*budget--
	if *budget <= 0 {
		return nil, false
	}
	first := pool[0]
	rest := pool[1:]
	for _, wantFresh := range [2]bool{true, false} {
		if !wantFresh && !allowRematch {
			break
		}
		for i, cand := range rest {
			if t.havePlayed(first.ID, cand.ID) == wantFresh {
				continue
			}
			remaining := make([]*Player, 0, len(rest)-1)
			remaining = append(remaining, rest[:i]...)
			remaining = append(remaining, rest[i+1:]...)
			if pairs, ok := t.backtrackSwissMatch(remaining, allowRematch, budget); ok {
				return append([]swissPairing{{first, cand}}, pairs...), true
			}
		}
	}
	return nil, false
}

// firstFitSwissMatch is the single left-to-right pass used only when
// backtrackSwissMatch exhausts its search budget: still prefers a fresh
// opponent when one happens to be available, but offers no guarantee of
// finding a repeat-free matching that exists elsewhere in the pool.
func (t *Tournament) firstFitSwissMatch(pool []*Player) []swissPairing {
	used := make([]bool, len(pool))
	var out []swissPairing
	for i := range pool {
		if used[i] {
			continue
		}
		best := -1
		for j := i + 1; j < len(pool); j++ {
			if used[j] {
				continue
			}
			if !t.havePlayed(pool[i].ID, pool[j].ID) {
				best = j
				break
			}
		}
		if best == -1 {
			for j := i + 1; j < len(pool); j++ {
				if !used[j] {
					best = j
					break
				}
			}
		}
		if best != -1 {
			used[i] = true
			used[best] = true
			out = append(out, swissPairing{pool[i], pool[best]})
		}
	}
	return out
}

// havePlayed reports whether a and b have a completed-match result entry
// against each other anywhere in event history.
func (t *Tournament) havePlayed(a, b PlayerID) bool {
	pa, ok := t.players[a]
	if !ok {
		return false
	}
	for _, r := range pa.Results {
		if r.OpponentID == b {
			return true
		}
	}
	return false
}
