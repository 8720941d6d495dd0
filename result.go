package tourneycore

// ReportResult records a match's outcome and drives whatever follows from
// it: standard scoreboard bookkeeping for Swiss/round-robin, or winner/loser
// routing for elimination brackets. Reporting over an already-reported match
// erases the prior result first, so corrections are just a second call.
func (t *Tournament) ReportResult(matchID MatchID, result Result) error {
	m, ok := t.matches[matchID]
	if !ok {
		return &IdentityError{Kind: "match", ID: string(matchID)}
	}
	if t.status != StatusActive && t.status != StatusPlayoffs {
		return &StateError{Status: t.status, Op: "ReportResult", Reason: "tournament is not in progress"}
	}
	if m.IsBye {
		return &ResultError{MatchID: matchID, Reason: "cannot report a result for a bye"}
	}
	if result.PlayerOneWins < 0 || result.PlayerTwoWins < 0 || result.Draws < 0 {
		return &ResultError{MatchID: matchID, Reason: "negative game counts"}
	}
	if m.elimination && result.PlayerOneWins == result.PlayerTwoWins {
		return &ResultError{MatchID: matchID, Reason: "elimination match cannot end in a tie"}
	}

	if m.Reported {
		if err := t.eraseResultInternal(m); err != nil {
			return err
		}
	} else if !m.Active {
		return &StateError{Status: t.status, Op: "ReportResult", Reason: "match is not yet ready to be played"}
	}

	if m.elimination {
		return t.applyEliminationResult(m, result)
	}
	return t.applyStandardResult(m, result)
}

// EraseResult reverses a previously reported result, restoring both
// participants to active play and, for elimination matches, pulling back any
// participant that had already advanced on the strength of it.
func (t *Tournament) EraseResult(matchID MatchID) error {
	m, ok := t.matches[matchID]
	if !ok {
		return &IdentityError{Kind: "match", ID: string(matchID)}
	}
	return t.eraseResultInternal(m)
}

func (t *Tournament) eraseResultInternal(m *Match) error {
	if m.elimination {
		return t.eraseEliminationResult(m)
	}
	return t.eraseStandardResult(m)
}

func outcomesFor(r Result) (Outcome, Outcome) {
	if r.PlayerOneWins > r.PlayerTwoWins {
		return OutcomeWin, OutcomeLoss
	}
	if r.PlayerTwoWins > r.PlayerOneWins {
		return OutcomeLoss, OutcomeWin
	}
	return OutcomeDraw, OutcomeDraw
}

func (t *Tournament) buildStandardEntry(m *Match, opponent PlayerID, outcome Outcome, ownWins, oppWins, draws int) ResultEntry {
	var matchPoints float64
	switch outcome {
	case OutcomeWin:
		matchPoints = t.config.PointsForWin
	case OutcomeDraw:
		matchPoints = t.config.PointsForDraw
	}
	gamePoints := float64(ownWins)*t.config.PointsForWin + float64(draws)*t.config.PointsForDraw
	return ResultEntry{
		MatchID:     m.ID,
		Round:       m.Round,
		OpponentID:  opponent,
		Outcome:     outcome,
		MatchPoints: matchPoints,
		GamePoints:  gamePoints,
		Games:       ownWins + oppWins + draws,
	}
}

func applyEntry(p *Player, e ResultEntry) {
	p.Results = append(p.Results, e)
	p.MatchCount++
	p.MatchPoints += e.MatchPoints
	p.GameCount += e.Games
	p.GamePoints += e.GamePoints
}

func removeEntryFor(p *Player, matchID MatchID) {
	for i, e := range p.Results {
		if e.MatchID == matchID {
			p.MatchCount--
			p.MatchPoints -= e.MatchPoints
			p.GameCount -= e.Games
			p.GamePoints -= e.GamePoints
			p.Results = append(p.Results[:i], p.Results[i+1:]...)
			return
		}
	}
}

// applyStandardResult scores a Swiss/round-robin match; draws are legal.
func (t *Tournament) applyStandardResult(m *Match, result Result) error {
	m.Result = result
	m.Reported = true
	m.Active = false

	o1, o2 := outcomesFor(result)
	e1 := t.buildStandardEntry(m, m.PlayerTwo, o1, result.PlayerOneWins, result.PlayerTwoWins, result.Draws)
	e2 := t.buildStandardEntry(m, m.PlayerOne, o2, result.PlayerTwoWins, result.PlayerOneWins, result.Draws)
	applyEntry(t.players[m.PlayerOne], e1)
	applyEntry(t.players[m.PlayerTwo], e2)

	t.log.WithFields(map[string]interface{}{"match": m.ID, "round": m.Round}).Debug("result reported")
	return nil
}

func (t *Tournament) eraseStandardResult(m *Match) error {
	if !m.Reported {
		return &ResultError{MatchID: m.ID, Reason: "match has no result to erase"}
	}
	if m.IsBye {
		return &ResultError{MatchID: m.ID, Reason: "cannot erase a bye"}
	}
	removeEntryFor(t.players[m.PlayerOne], m.ID)
	removeEntryFor(t.players[m.PlayerTwo], m.ID)
	m.Reported = false
	m.Active = m.PlayerOne != noneID && m.PlayerTwo != noneID
	m.Result = Result{}
	return nil
}

func eliminationWinnerLoser(m *Match) (winner, loser PlayerID) {
	if m.Result.PlayerOneWins > m.Result.PlayerTwoWins {
		return m.PlayerOne, m.PlayerTwo
	}
	return m.PlayerTwo, m.PlayerOne
}

func (t *Tournament) recordEliminationResultEntry(m *Match, winnerID, loserID PlayerID, result Result) {
	var winnerWins, loserWins int
	if winnerID == m.PlayerOne {
		winnerWins, loserWins = result.PlayerOneWins, result.PlayerTwoWins
	} else {
		winnerWins, loserWins = result.PlayerTwoWins, result.PlayerOneWins
	}
	we := ResultEntry{MatchID: m.ID, Round: m.Round, OpponentID: loserID, Outcome: OutcomeWin,
		MatchPoints: t.config.PointsForWin, GamePoints: float64(winnerWins) * t.config.PointsForWin, Games: winnerWins + loserWins}
	le := ResultEntry{MatchID: m.ID, Round: m.Round, OpponentID: winnerID, Outcome: OutcomeLoss,
		MatchPoints: 0, GamePoints: float64(loserWins) * t.config.PointsForWin, Games: winnerWins + loserWins}
	applyEntry(t.players[winnerID], we)
	applyEntry(t.players[loserID], le)
}

// applyEliminationResult scores a bracket match and drives routing: the
// winner advances toward the final, the loser either drops to the losers
// bracket or is eliminated outright.
func (t *Tournament) applyEliminationResult(m *Match, result Result) error {
	if result.PlayerOneWins == result.PlayerTwoWins {
		return &ResultError{MatchID: m.ID, Reason: "elimination match cannot end in a tie"}
	}
	m.Result = result
	m.Reported = true
	m.Active = false

	winnerID, loserID := eliminationWinnerLoser(m)
	t.recordEliminationResultEntry(m, winnerID, loserID, result)

	switch {
	case m.IsResetMatch:
		t.players[loserID].Active = false
		t.status = StatusFinished
		t.log.Info("tournament finished (bracket reset)")
		return nil
	case m.IsGrandFinal:
		return t.handleGrandFinalResult(m, winnerID, loserID)
	case m.IsConsolation:
		t.players[loserID].Active = false
		return nil
	}

	t.advanceWinner(m, winnerID)
	t.advanceLoser(m, loserID)

	if m.ID == t.finalMatch {
		t.status = StatusFinished
		t.log.Info("tournament finished")
	}
	return nil
}

// handleGrandFinalResult applies the double-elimination bracket-reset rule:
// if the entrant who arrived via the losers bracket wins the first grand
// final, the once-beaten winners-bracket entrant gets a second match instead
// of the event ending outright.
func (t *Tournament) handleGrandFinalResult(m *Match, winnerID, loserID PlayerID) error {
	winnerSlotSource := m.playerOneSource
	if winnerID == m.PlayerTwo {
		winnerSlotSource = m.playerTwoSource
	}
	if winnerSlotSource == t.losersFinalMatch && m.ResetMatch != noneID {
		reset := t.matches[m.ResetMatch]
		reset.PlayerOne = loserID
		reset.playerOneSource = m.ID
		reset.PlayerTwo = winnerID
		reset.playerTwoSource = m.ID
		reset.Active = true
		t.log.Info("grand final forced to bracket reset")
		return nil
	}
	t.players[loserID].Active = false
	t.status = StatusFinished
	t.log.Info("tournament finished")
	return nil
}

// eraseEliminationResult reverses a bracket result, retracting the winner
// and loser from wherever they had advanced to and reopening m for play.
func (t *Tournament) eraseEliminationResult(m *Match) error {
	if !m.Reported {
		return &ResultError{MatchID: m.ID, Reason: "match has no result to erase"}
	}
	if m.IsBye {
		return &ResultError{MatchID: m.ID, Reason: "cannot erase a bye"}
	}
	winnerID, loserID := eliminationWinnerLoser(m)

	wasFinishing := t.status == StatusFinished &&
		(m.ID == t.finalMatch || m.IsGrandFinal || m.IsResetMatch)

	if m.IsGrandFinal && m.ResetMatch != noneID {
		reset := t.matches[m.ResetMatch]
		if reset.playerOneSource == m.ID || reset.playerTwoSource == m.ID {
			reset.PlayerOne, reset.playerOneSource = noneID, noneID
			reset.PlayerTwo, reset.playerTwoSource = noneID, noneID
			reset.Active = false
			reset.Reported = false
			reset.Result = Result{}
		}
	} else {
		t.retractFromDownstream(m)
	}

	removeEntryFor(t.players[winnerID], m.ID)
	removeEntryFor(t.players[loserID], m.ID)

	t.players[winnerID].Active = true
	t.players[loserID].Active = true
	m.Reported = false
	m.Active = m.PlayerOne != noneID && m.PlayerTwo != noneID
	m.Result = Result{}

	if wasFinishing {
		t.status = t.activeEliminationStatus()
	}
	return nil
}

// activeEliminationStatus is the status a bracket match's erase should
// reopen into: StatusActive for a top-level elimination event, StatusPlayoffs
// for a bracket appended to a finished Swiss/round-robin stage.
func (t *Tournament) activeEliminationStatus() Status {
	if isElimination(t.config.Format) {
		return StatusActive
	}
	return StatusPlayoffs
}

// forfeitEliminationMatch scores a withdrawal as a forfeit loss for id and
// advances the opponent normally, but never routes the withdrawing player
// into the losers bracket: collapseAfterWithdrawal (routing.go) takes over
// wiring whatever node their slot would have fed.
func (t *Tournament) forfeitEliminationMatch(m *Match, id PlayerID) error {
	var opponent PlayerID
	var result Result
	forfeitWins := ceilHalf(t.config.BestOf)
	if m.PlayerOne == id {
		opponent = m.PlayerTwo
		result = Result{PlayerOneWins: 0, PlayerTwoWins: forfeitWins}
	} else {
		opponent = m.PlayerOne
		result = Result{PlayerOneWins: forfeitWins, PlayerTwoWins: 0}
	}
	m.Result = result
	m.Reported = true
	m.Active = false
	t.recordEliminationResultEntry(m, opponent, id, result)
	t.players[id].Active = false

	switch {
	case m.IsResetMatch:
		t.status = StatusFinished
		t.log.Info("tournament finished (bracket reset)")
		return nil
	case m.IsGrandFinal:
		return t.handleGrandFinalResult(m, opponent, id)
	case m.IsConsolation:
		return nil
	}

	t.advanceWinner(m, opponent)
	if m.ID == t.finalMatch {
		t.status = StatusFinished
		t.log.Info("tournament finished")
		return nil
	}
	t.collapseAfterWithdrawal(m, id)
	return nil
}
