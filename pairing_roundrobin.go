package tourneycore

// buildRoundRobinSchedule builds the full round-robin schedule up front
// using the circle method: player 1 is fixed, the remaining n-1 players
// rotate one position each round. An odd field gets a phantom opponent
// inserted, which encodes that round's bye for whichever real player draws
// it. Double round-robin appends a second leg with sides swapped.
func (t *Tournament) buildRoundRobinSchedule() error {
	players := t.activePlayers()
	n := len(players)
	ids := make([]PlayerID, 0, n+1)
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	if n%2 != 0 {
		ids = append(ids, noneID)
	}
	legRounds := len(ids) - 1

	if t.config.Format == FormatDoubleRoundRobin {
		t.scheduledRounds = legRounds * 2
	} else {
		t.scheduledRounds = legRounds
	}

	t.generateRoundRobinLeg(ids, 0, false)
	if t.config.Format == FormatDoubleRoundRobin {
		t.generateRoundRobinLeg(ids, legRounds, true)
	}
	return nil
}

// generateRoundRobinLeg runs the circle method once, offsetting round
// numbers by roundOffset and swapping which side plays "player one" when
// swapSides is set (used for the second leg of a double round-robin).
func (t *Tournament) generateRoundRobinLeg(ids []PlayerID, roundOffset int, swapSides bool) {
	m := len(ids)
	arr := make([]PlayerID, m)
	copy(arr, ids)

	for round := 1; round <= m-1; round++ {
		for i := 0; i < m/2; i++ {
			a, b := arr[i], arr[m-1-i]
			if (round%2 == 0) != swapSides {
				a, b = b, a
			}
			actualRound := roundOffset + round

			mt := &Match{
				ID:          t.newMatchID(),
				Round:       actualRound,
				MatchNumber: i + 1,
				PlayerOne:   a,
				PlayerTwo:   b,
			}
			if a == noneID {
				mt.PlayerOne, mt.PlayerTwo = b, noneID
				mt.Active = false
			} else if b == noneID {
				mt.Active = false
			} else {
				mt.Active = actualRound == 1
			}
			t.addMatch(mt)
		}
		last := arr[m-1]
		for i := m - 1; i > 1; i-- {
			arr[i] = arr[i-1]
		}
		arr[1] = last
	}
}

// activateRoundRobinRound flips Active on for a pre-built round's matches
// that still have both slots filled; matches voided by a mid-event
// withdrawal are skipped.
func (t *Tournament) activateRoundRobinRound(round int) error {
	for _, mid := range t.matchOrder {
		m := t.matches[mid]
		if m.Round != round || m.Reported {
			continue
		}
		if m.PlayerOne != noneID && m.PlayerTwo != noneID {
			m.Active = true
		}
	}
	return nil
}
