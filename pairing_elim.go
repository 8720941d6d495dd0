package tourneycore

import (
	"math/bits"
	"sort"
)

// standardSeedOrder returns the textbook seed-position ordering for a bracket
// of the given power-of-two size: position i holds the seed number that
// should occupy slot i+1 so that, round by round, the best remaining seeds
// meet as late as possible (1v8, 4v5, 2v7, 3v6 for size 8).
func standardSeedOrder(size int) []int {
	seeds := []int{1}
	for len(seeds) < size {
		n := len(seeds) * 2
		next := make([]int, 0, n)
		for _, s := range seeds {
			next = append(next, s, n+1-s)
		}
		seeds = next
	}
	return seeds
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// slotRef names a specific slot (1 or 2) of a specific match, used as the
// static routing target for a match's winner or loser.
type slotRef struct {
	target MatchID
	slot   int
}

// seedEliminationBracket builds a complete bracket from ids, seeded by each
// player's Seed field (ties broken by list order), and schedules round 1.
// Top seeds receive a bye in proportion to 2^ceil(log2(n)) - n. double
// selects single- or double-elimination routing.
func (t *Tournament) seedEliminationBracket(ids []PlayerID, double bool) error {
	ordered := make([]*Player, len(ids))
	for i, id := range ids {
		ordered[i] = t.players[id]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := ordered[i].Seed, ordered[j].Seed
		if si == 0 {
			si = i + 1
		}
		if sj == 0 {
			sj = j + 1
		}
		return si < sj
	})

	n := len(ordered)
	size := nextPowerOfTwo(n)
	order := standardSeedOrder(size)
	slots := make([]PlayerID, size)
	for i, seedPos := range order {
		if seedPos-1 < n {
			slots[i] = ordered[seedPos-1].ID
		} else {
			slots[i] = noneID
		}
	}

	if t.winnersFeed == nil {
		t.winnersFeed = map[MatchID]slotRef{}
	}
	if t.losersFeed == nil {
		t.losersFeed = map[MatchID]slotRef{}
	}

	winnersRounds, winnersFinal, winnersByRound := t.buildWinnersBracket(slots, t.currentRound)

	if !double {
		t.finalMatch = winnersFinal
		t.scheduledRounds = t.currentRound + winnersRounds - 1
		if t.config.Consolation && len(winnersByRound) >= 2 {
			t.buildConsolationMatch(winnersByRound[len(winnersByRound)-2])
		}
		return nil
	}

	losersFinal := t.buildLosersBracket(winnersByRound, t.currentRound)
	gf := &Match{
		ID:          t.newMatchID(),
		Round:       t.currentRound + winnersRounds,
		MatchNumber: 1,
		IsGrandFinal: true,
		elimination: true,
	}
	t.addMatch(gf)
	t.winnersFeed[winnersFinal] = slotRef{target: gf.ID, slot: 1}
	t.winnersFeed[losersFinal] = slotRef{target: gf.ID, slot: 2}
	t.losersFinalMatch = losersFinal

	reset := &Match{
		ID:           t.newMatchID(),
		Round:        t.currentRound + winnersRounds + 1,
		MatchNumber:  1,
		IsResetMatch: true,
		elimination:  true,
	}
	t.addMatch(reset)
	gf.ResetMatch = reset.ID

	t.finalMatch = gf.ID
	t.scheduledRounds = reset.Round
	return nil
}

// bracketNode is either a concrete starting player (round 1 seeding) or a
// placeholder for "whoever wins sourceMatch".
type bracketNode struct {
	playerID    PlayerID
	sourceMatch MatchID
}

// buildWinnersBracket lays out the single-elimination tree from slots (a
// power-of-two-sized seed assignment, noneID marking a bye) and wires each
// match's winner to the next round via winnersFeed. It returns the number of
// rounds, the final match's id, and the match ids grouped by round (index 0
// is round 1) for the caller to build a losers bracket or consolation match
// from.
func (t *Tournament) buildWinnersBracket(slots []PlayerID, startRound int) (int, MatchID, [][]MatchID) {
	nodes := make([]bracketNode, len(slots))
	for i, pid := range slots {
		nodes[i] = bracketNode{playerID: pid}
	}
	numRounds := 0
	for sz := len(slots); sz > 1; sz /= 2 {
		numRounds++
	}

	var byRound [][]MatchID
	for r := 1; r <= numRounds; r++ {
		var nextNodes []bracketNode
		var thisRound []MatchID
		matchNum := 0
		for i := 0; i < len(nodes); i += 2 {
			n1, n2 := nodes[i], nodes[i+1]
			matchNum++
			actualRound := startRound + r - 1

			if r == 1 && n1.playerID != noneID && n2.playerID == noneID {
				m := &Match{ID: t.newMatchID(), Round: actualRound, MatchNumber: matchNum, PlayerOne: n1.playerID, elimination: true}
				t.addMatch(m)
				thisRound = append(thisRound, m.ID)
				nextNodes = append(nextNodes, bracketNode{sourceMatch: m.ID})
				continue
			}
			if r == 1 && n2.playerID != noneID && n1.playerID == noneID {
				m := &Match{ID: t.newMatchID(), Round: actualRound, MatchNumber: matchNum, PlayerOne: n2.playerID, elimination: true}
				t.addMatch(m)
				thisRound = append(thisRound, m.ID)
				nextNodes = append(nextNodes, bracketNode{sourceMatch: m.ID})
				continue
			}

			m := &Match{ID: t.newMatchID(), Round: actualRound, MatchNumber: matchNum, elimination: true}
			if n1.playerID != noneID {
				m.PlayerOne = n1.playerID
			}
			if n2.playerID != noneID {
				m.PlayerTwo = n2.playerID
			}
			if n1.sourceMatch != noneID {
				t.winnersFeed[n1.sourceMatch] = slotRef{target: m.ID, slot: 1}
			}
			if n2.sourceMatch != noneID {
				t.winnersFeed[n2.sourceMatch] = slotRef{target: m.ID, slot: 2}
			}
			m.Active = r == 1 && m.PlayerOne != noneID && m.PlayerTwo != noneID
			t.addMatch(m)
			thisRound = append(thisRound, m.ID)
			nextNodes = append(nextNodes, bracketNode{sourceMatch: m.ID})
		}
		byRound = append(byRound, thisRound)
		nodes = nextNodes
	}
	final := byRound[len(byRound)-1][0]
	return numRounds, final, byRound
}

// buildConsolationMatch wires the two semifinal losers into a standalone
// third-place match. It never feeds into anything further, so routing just
// deactivates its loser on completion.
func (t *Tournament) buildConsolationMatch(semifinals []MatchID) {
	if len(semifinals) != 2 {
		return
	}
	m := &Match{
		ID:            t.newMatchID(),
		Round:         t.matches[semifinals[0]].Round + 1,
		MatchNumber:   1,
		IsConsolation: true,
		elimination:   true,
	}
	t.addMatch(m)
	t.losersFeed[semifinals[0]] = slotRef{target: m.ID, slot: 1}
	t.losersFeed[semifinals[1]] = slotRef{target: m.ID, slot: 2}
}

// bracketSurvivor names an entrant still alive in the losers bracket: either
// the winner of an internal losers-bracket match (the common case) or, for
// an odd leftover at a drop-in point, the loser of a winners-bracket match
// carried forward untouched to the next round.
type bracketSurvivor struct {
	match   MatchID
	byLoser bool
}

// buildLosersBracket constructs the double-elimination losers bracket from
// the winners bracket's per-round match lists, alternating "minor" rounds
// (losers from the current winners round drop in) with "major" rounds
// (survivors from the previous losers round play each other down). Byes in
// the winners bracket can leave an odd entrant at any drop-in point; that
// entrant carries forward to the next round rather than playing early. It
// returns the losers-bracket final match id.
func (t *Tournament) buildLosersBracket(winnersByRound [][]MatchID, startRound int) MatchID {
	loserRoundNum := 0
	nextRound := func() int {
		loserRoundNum++
		return startRound + len(winnersByRound) + loserRoundNum - 1
	}
	feedFrom := func(s bracketSurvivor, target MatchID, slot int) {
		if s.byLoser {
			t.losersFeed[s.match] = slotRef{target: target, slot: slot}
		} else {
			t.winnersFeed[s.match] = slotRef{target: target, slot: slot}
		}
	}

	var realRound1Losers []MatchID
	for _, mid := range winnersByRound[0] {
		if t.matches[mid].PlayerTwo != noneID {
			realRound1Losers = append(realRound1Losers, mid)
		}
	}

	var current []bracketSurvivor
	if len(realRound1Losers) > 0 {
		rnd := nextRound()
		idx := 0
		for i := 0; i+1 < len(realRound1Losers); i += 2 {
			m := &Match{ID: t.newMatchID(), Round: rnd, MatchNumber: idx + 1, elimination: true}
			t.addMatch(m)
			t.losersFeed[realRound1Losers[i]] = slotRef{target: m.ID, slot: 1}
			t.losersFeed[realRound1Losers[i+1]] = slotRef{target: m.ID, slot: 2}
			current = append(current, bracketSurvivor{match: m.ID})
			idx++
		}
		if len(realRound1Losers)%2 == 1 {
			current = append(current, bracketSurvivor{match: realRound1Losers[len(realRound1Losers)-1], byLoser: true})
		}
	}

	for wr := 1; wr < len(winnersByRound); wr++ {
		losers := winnersByRound[wr]
		rnd := nextRound()
		var minor []bracketSurvivor
		for i, s := range current {
			m := &Match{ID: t.newMatchID(), Round: rnd, MatchNumber: i + 1, elimination: true}
			t.addMatch(m)
			feedFrom(s, m.ID, 1)
			if i < len(losers) {
				t.losersFeed[losers[i]] = slotRef{target: m.ID, slot: 2}
			}
			minor = append(minor, bracketSurvivor{match: m.ID})
		}
		for i := len(current); i < len(losers); i++ {
			minor = append(minor, bracketSurvivor{match: losers[i], byLoser: true})
		}
		current = minor

		if wr < len(winnersByRound)-1 && len(current) > 1 {
			rnd = nextRound()
			var major []bracketSurvivor
			for i := 0; i+1 < len(current); i += 2 {
				m := &Match{ID: t.newMatchID(), Round: rnd, MatchNumber: i/2 + 1, elimination: true}
				t.addMatch(m)
				feedFrom(current[i], m.ID, 1)
				feedFrom(current[i+1], m.ID, 2)
				major = append(major, bracketSurvivor{match: m.ID})
			}
			if len(current)%2 == 1 {
				major = append(major, current[len(current)-1])
			}
			current = major
		}
	}
	return current[0].match
}
