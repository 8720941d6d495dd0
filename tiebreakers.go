package tourneycore

import "sort"

// minPctFloor is the 1/3 floor applied to every win-percentage statistic so
// a short or losing history can't drag a player's percentage below 1/3.
const minPctFloor = 1.0 / 3.0

// computeTiebreakers recomputes every player's Tiebreakers wholesale from
// their current Results history. It is never maintained incrementally:
// erasing a result or adding a late entrant would otherwise require
// threading a reverse update through every statistic that depends on it.
func (t *Tournament) computeTiebreakers() {
	matchWin := map[PlayerID]float64{}
	gameWin := map[PlayerID]float64{}
	cumulative := map[PlayerID]float64{}
	for _, id := range t.playerOrder {
		p := t.players[id]
		matchWin[id] = floorPct(matchWinPct(p, t.config.PointsForWin))
		gameWin[id] = floorPct(gameWinPct(p, t.config.PointsForWin))
		cumulative[id] = t.cumulativeScore(p)
	}

	// OMW%/OGW% average each opponent's OWN match/game win %, but per
	// spec.md §4.3 that opponent's pct must exclude their results against
	// the player being evaluated — otherwise a player's record against a
	// weak opponent inflates that opponent's contribution to the player's
	// own OMW%, double-counting the very match being weighed.
	omw := map[PlayerID]float64{}
	ogw := map[PlayerID]float64{}
	for _, id := range t.playerOrder {
		opponents := realOpponents(t.players[id])
		var mwSum, gwSum float64
		for _, opp := range opponents {
			mwSum += floorPct(matchWinPctExcluding(t.players[opp], id, t.config.PointsForWin))
			gwSum += floorPct(gameWinPctExcluding(t.players[opp], id, t.config.PointsForWin))
		}
		if len(opponents) > 0 {
			omw[id] = mwSum / float64(len(opponents))
			ogw[id] = gwSum / float64(len(opponents))
		}
	}

	for _, id := range t.playerOrder {
		p := t.players[id]
		opponents := realOpponents(p)

		var solkoff, oppCum float64
		for _, opp := range opponents {
			solkoff += t.players[opp].MatchPoints
			oppCum += cumulative[opp]
		}

		p.Tiebreakers = Tiebreakers{
			GameWinPct:                  gameWin[id],
			MatchWinPct:                 matchWin[id],
			OpponentMatchWinPct:         omw[id],
			OpponentGameWinPct:          ogw[id],
			OpponentOpponentMatchWinPct: average(opponents, omw),
			Solkoff:                     solkoff,
			MedianBuchholz:              t.medianBuchholz(opponents),
			SonnebornBerger:             t.sonnebornBerger(p),
			Cumulative:                  cumulative[id],
			OpponentCumulative:          oppCum,
			Versus:                      t.versusScore(p),
		}
	}
}

func average(ids []PlayerID, m map[PlayerID]float64) float64 {
	if len(ids) == 0 {
		return 0
	}
	var sum float64
	for _, id := range ids {
		sum += m[id]
	}
	return sum / float64(len(ids))
}

func floorPct(v float64) float64 {
	if v < minPctFloor {
		return minPctFloor
	}
	return v
}

func matchWinPct(p *Player, pointsForWin float64) float64 {
	if p.MatchCount == 0 || pointsForWin == 0 {
		return 0
	}
	return p.MatchPoints / (float64(p.MatchCount) * pointsForWin)
}

// gameWinPct is computed the same way as matchWinPct: points earned over
// the maximum possible, so a draw's partial game-point credit is reflected
// without needing a separate per-game win counter on Player.
func gameWinPct(p *Player, pointsForWin float64) float64 {
	if p.GameCount == 0 || pointsForWin == 0 {
		return 0
	}
	return p.GamePoints / (float64(p.GameCount) * pointsForWin)
}

// matchWinPctExcluding is p's match win % as if every result entry against
// excludeOpp had never been recorded, per spec.md §4.3's "self-results
// excluded from each opponent when computing that opponent's value against
// self."
func matchWinPctExcluding(p *Player, excludeOpp PlayerID, pointsForWin float64) float64 {
	var count int
	var points float64
	for _, r := range p.Results {
		if r.OpponentID == excludeOpp {
			continue
		}
		count++
		points += r.MatchPoints
	}
	if count == 0 || pointsForWin == 0 {
		return 0
	}
	return points / (float64(count) * pointsForWin)
}

// gameWinPctExcluding mirrors matchWinPctExcluding for game win %.
func gameWinPctExcluding(p *Player, excludeOpp PlayerID, pointsForWin float64) float64 {
	var games int
	var points float64
	for _, r := range p.Results {
		if r.OpponentID == excludeOpp {
			continue
		}
		games += r.Games
		points += r.GamePoints
	}
	if games == 0 || pointsForWin == 0 {
		return 0
	}
	return points / (float64(games) * pointsForWin)
}

// realOpponents lists a player's opponents in round order, one entry per
// round played against them; byes and forfeited-bye rounds are excluded.
func realOpponents(p *Player) []PlayerID {
	var out []PlayerID
	for _, r := range p.Results {
		if r.OpponentID != noneID {
			out = append(out, r.OpponentID)
		}
	}
	return out
}

// cumulativeScore sums the player's running match-point total after each
// round played, rewarding players who were ahead earlier over those who
// caught up late with the same final total. Per spec.md §4.3 and its
// resolution in SPEC_FULL.md §4.3 (Open Question 3), each round's
// contribution is decremented by the match points that round's opponent
// had already banked from byes elsewhere in the tournament up to that
// round, so a breakout score isn't inflated by an opponent who skated on a
// bye rather than beating the field.
func (t *Tournament) cumulativeScore(p *Player) float64 {
	var running, sum float64
	for _, r := range p.Results {
		running += r.MatchPoints
		contribution := running
		if r.OpponentID != noneID {
			if opp, ok := t.players[r.OpponentID]; ok {
				contribution -= byePointsThroughRound(opp, r.Round)
			}
		}
		sum += contribution
	}
	return sum
}

// byePointsThroughRound sums the match points p gained from byes in rounds
// up to and including round.
func byePointsThroughRound(p *Player, round int) float64 {
	var sum float64
	for _, r := range p.Results {
		if r.Outcome == OutcomeBye && r.Round <= round {
			sum += r.MatchPoints
		}
	}
	return sum
}

// medianBuchholz is Solkoff with the single highest and lowest opponent
// score dropped; with fewer than three opponents there's nothing safe to
// drop, so it falls back to plain Solkoff.
func (t *Tournament) medianBuchholz(opponents []PlayerID) float64 {
	if len(opponents) < 3 {
		var sum float64
		for _, opp := range opponents {
			sum += t.players[opp].MatchPoints
		}
		return sum
	}
	scores := make([]float64, len(opponents))
	for i, opp := range opponents {
		scores[i] = t.players[opp].MatchPoints
	}
	sort.Float64s(scores)
	var sum float64
	for _, s := range scores[1 : len(scores)-1] {
		sum += s
	}
	return sum
}

func (t *Tournament) sonnebornBerger(p *Player) float64 {
	var sb float64
	for _, r := range p.Results {
		if r.OpponentID == noneID {
			continue
		}
		oppPoints := t.players[r.OpponentID].MatchPoints
		switch r.Outcome {
		case OutcomeWin:
			sb += oppPoints
		case OutcomeDraw:
			sb += oppPoints / 2
		}
	}
	return sb
}

// versusScore sums match points earned specifically against opponents who
// currently share this player's match-point total: the tied-cohort
// comparator, applied as the last tiebreaker before seed order.
func (t *Tournament) versusScore(p *Player) float64 {
	var sum float64
	for _, r := range p.Results {
		if r.OpponentID == noneID {
			continue
		}
		if opp, ok := t.players[r.OpponentID]; ok && opp.MatchPoints == p.MatchPoints {
			sum += r.MatchPoints
		}
	}
	return sum
}

// sortedStandings orders players by match points, then by the configured
// tiebreaker precedence, then by the versus comparator, then by seed.
func (t *Tournament) sortedStandings(activeOnly bool) []Player {
	ids := make([]PlayerID, 0, len(t.playerOrder))
	for _, id := range t.playerOrder {
		p := t.players[id]
		if activeOnly && (!p.Active || p.removed) {
			continue
		}
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return t.standingsLess(t.players[ids[i]], t.players[ids[j]])
	})
	out := make([]Player, len(ids))
	for i, id := range ids {
		out[i] = *t.players[id]
	}
	return out
}

func (t *Tournament) standingsLess(a, b *Player) bool {
	if a.MatchPoints != b.MatchPoints {
		return a.MatchPoints > b.MatchPoints
	}
	for _, tb := range t.config.Tiebreakers {
		av, bv := tiebreakerValue(a, tb), tiebreakerValue(b, tb)
		if av != bv {
			return av > bv
		}
	}
	if a.Tiebreakers.Versus != b.Tiebreakers.Versus {
		return a.Tiebreakers.Versus > b.Tiebreakers.Versus
	}
	return a.Seed < b.Seed
}

func tiebreakerValue(p *Player, tb Tiebreaker) float64 {
	switch tb {
	case TiebreakerGameWinPct:
		return p.Tiebreakers.GameWinPct
	case TiebreakerMatchWinPct:
		return p.Tiebreakers.MatchWinPct
	case TiebreakerOpponentMatchWinPct:
		return p.Tiebreakers.OpponentMatchWinPct
	case TiebreakerOpponentGameWinPct:
		return p.Tiebreakers.OpponentGameWinPct
	case TiebreakerOpponentOpponentMatchWinPct:
		return p.Tiebreakers.OpponentOpponentMatchWinPct
	case TiebreakerSolkoff:
		return p.Tiebreakers.Solkoff
	case TiebreakerMedianBuchholz:
		return p.Tiebreakers.MedianBuchholz
	case TiebreakerSonnebornBerger:
		return p.Tiebreakers.SonnebornBerger
	case TiebreakerCumulative:
		return p.Tiebreakers.Cumulative
	case TiebreakerVersus:
		return p.Tiebreakers.Versus
	default:
		return 0
	}
}
