package tourneycore

// pairRoundForFormat dispatches the round-1 (or Swiss per-round) pairing
// generator by format; round-robin and elimination formats build their
// whole schedule/bracket once, at round 1. Later round-robin rounds are
// activated here as they're reached; later bracket matches are activated
// by result routing instead, so this does nothing for them.
func (t *Tournament) pairRoundForFormat() error {
	switch t.config.Format {
	case FormatSwiss:
		return t.pairSwissRound()
	case FormatRoundRobin, FormatDoubleRoundRobin:
		if t.currentRound == 1 {
			return t.buildRoundRobinSchedule()
		}
		return t.activateRoundRobinRound(t.currentRound)
	case FormatSingleElim, FormatDoubleElim:
		if t.currentRound == 1 {
			players := t.activePlayers()
			ids := make([]PlayerID, 0, len(players))
			for _, p := range players {
				ids = append(ids, p.ID)
			}
			return t.seedEliminationBracket(ids, t.config.Format == FormatDoubleElim)
		}
		return nil
	}
	return nil
}

// materializeByes applies the round-start bye rule of spec.md §4.2 to every
// not-yet-reported match in round whose second slot is empty: the present
// player is awarded a forfeit win and pairingBye is set. Matches voided by
// a mid-event withdrawal are never byes.
func (t *Tournament) materializeByes(round int) {
	for _, mid := range t.matchOrder {
		m := t.matches[mid]
		if m.Round != round || m.Reported || m.voided {
			continue
		}
		if m.PlayerOne != noneID && m.PlayerTwo == noneID {
			t.applyBye(m)
		}
	}
}

func (t *Tournament) applyBye(m *Match) {
	p := t.players[m.PlayerOne]
	wins := ceilHalf(t.config.BestOf)
	m.Result = Result{PlayerOneWins: wins, PlayerTwoWins: 0, Draws: 0}
	m.Reported = true
	m.Active = false
	m.IsBye = true

	entry := ResultEntry{
		MatchID:     m.ID,
		Round:       m.Round,
		OpponentID:  noneID,
		Outcome:     OutcomeBye,
		MatchPoints: t.config.PointsForWin,
		GamePoints:  float64(wins) * t.config.PointsForWin,
		Games:       wins,
	}
	p.Results = append(p.Results, entry)
	p.MatchCount++
	p.MatchPoints += entry.MatchPoints
	p.GameCount += entry.Games
	p.GamePoints += entry.GamePoints
	p.PairingBye = true

	if m.elimination {
		t.advanceWinner(m, m.PlayerOne)
		if m.ID == t.finalMatch {
			t.status = StatusFinished
		}
	}

	t.log.WithField("player", m.PlayerOne).Debug("bye materialized")
}
