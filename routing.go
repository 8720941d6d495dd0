package tourneycore

// advanceWinner pushes m's winner into the slot winnersFeed wired it to. A
// missing entry means m is a terminal match (the event final, a bracket
// reset, or a consolation match) and there is nothing further to do.
func (t *Tournament) advanceWinner(m *Match, winnerID PlayerID) {
	ref, ok := t.winnersFeed[m.ID]
	if !ok {
		return
	}
	t.fillSlot(ref, winnerID, m.ID)
}

// advanceLoser pushes m's loser into the slot losersFeed wired it to. A
// missing entry means the format eliminates on a single loss here: the
// player is marked inactive and play ends for them.
func (t *Tournament) advanceLoser(m *Match, loserID PlayerID) {
	ref, ok := t.losersFeed[m.ID]
	if !ok {
		if p, exists := t.players[loserID]; exists {
			p.Active = false
		}
		return
	}
	t.fillSlot(ref, loserID, m.ID)
}

func (t *Tournament) fillSlot(ref slotRef, playerID PlayerID, sourceID MatchID) {
	target, ok := t.matches[ref.target]
	if !ok {
		return
	}
	if ref.slot == 1 {
		target.PlayerOne = playerID
		target.playerOneSource = sourceID
	} else {
		target.PlayerTwo = playerID
		target.playerTwoSource = sourceID
	}
	if target.PlayerOne != noneID && target.PlayerTwo != noneID && !target.Reported {
		target.Active = true
	}
}

// retractFromDownstream undoes advanceWinner/advanceLoser for m, clearing
// whichever downstream slots m's result had filled. Used by EraseResult.
func (t *Tournament) retractFromDownstream(m *Match) {
	if ref, ok := t.winnersFeed[m.ID]; ok {
		t.clearSlot(ref, m.ID)
	}
	if ref, ok := t.losersFeed[m.ID]; ok {
		t.clearSlot(ref, m.ID)
	}
}

func (t *Tournament) clearSlot(ref slotRef, sourceID MatchID) {
	target, ok := t.matches[ref.target]
	if !ok {
		return
	}
	if ref.slot == 1 && target.playerOneSource == sourceID {
		target.PlayerOne = noneID
		target.playerOneSource = noneID
	} else if ref.slot == 2 && target.playerTwoSource == sourceID {
		target.PlayerTwo = noneID
		target.playerTwoSource = noneID
	} else {
		return
	}
	if !target.Reported {
		target.Active = false
	}
}

// findFeeder returns the match id (if any) statically wired to fill the
// given slot of target, searching both routing tables. Bracket topology is
// small and fixed at seeding time, so a linear scan is simpler and just as
// correct as maintaining a reverse index incrementally.
func (t *Tournament) findFeeder(target MatchID, slot int) (MatchID, bool) {
	for id, ref := range t.winnersFeed {
		if ref.target == target && ref.slot == slot {
			return id, true
		}
	}
	for id, ref := range t.losersFeed {
		if ref.target == target && ref.slot == slot {
			return id, true
		}
	}
	return noneID, false
}

// collapseAfterWithdrawal implements spec.md §4.4: a withdrawn player never
// occupies a losers-bracket slot. If the sibling slot of the node the
// withdrawal would have fed is already occupied, that occupant is promoted
// straight past the now-single-entrant node. Otherwise the node is collapsed
// out of the graph entirely by rewiring whichever match would eventually
// have filled its other slot directly to the node's own downstream target.
func (t *Tournament) collapseAfterWithdrawal(forfeitedMatch *Match, withdrawnID PlayerID) {
	_ = withdrawnID
	ref, ok := t.losersFeed[forfeitedMatch.ID]
	if !ok {
		return
	}
	node, ok := t.matches[ref.target]
	if !ok {
		return
	}
	otherSlot := 2
	if ref.slot == 2 {
		otherSlot = 1
	}
	var otherFilled bool
	var occupant PlayerID
	if otherSlot == 1 {
		otherFilled = node.PlayerOne != noneID
		occupant = node.PlayerOne
	} else {
		otherFilled = node.PlayerTwo != noneID
		occupant = node.PlayerTwo
	}

	if otherFilled {
		node.Active = false
		node.bypassed = true
		if wref, ok2 := t.winnersFeed[node.ID]; ok2 {
			t.fillSlot(wref, occupant, node.ID)
		}
		delete(t.winnersFeed, node.ID)
		return
	}

	feeder, found := t.findFeeder(node.ID, otherSlot)
	wref, hasTarget := t.winnersFeed[node.ID]
	if !found || !hasTarget {
		// Nothing feeds the other slot, or node has no downstream target
		// (it is itself terminal): leave node as a lone, perpetually
		// waiting entrant rather than guess at a rewire.
		return
	}
	if lr, ok2 := t.winnersFeed[feeder]; ok2 && lr.target == node.ID {
		t.winnersFeed[feeder] = wref
	}
	if lr, ok2 := t.losersFeed[feeder]; ok2 && lr.target == node.ID {
		t.losersFeed[feeder] = wref
	}
	node.Active = false
	node.bypassed = true
	delete(t.winnersFeed, node.ID)
}
