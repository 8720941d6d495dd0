package tourneycore

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// minPlayers is the minimum registration size required to Start, keyed by
// format. The single/double-elimination guard is fixed at 4 here: the
// literal spec text disagreed with its own check (see SPEC_FULL.md §4.2),
// and this resolves that in favor of the check, not the stale error text.
func minPlayers(f Format) int {
	switch f {
	case FormatSwiss:
		return 8
	case FormatRoundRobin, FormatDoubleRoundRobin:
		return 4
	case FormatSingleElim, FormatDoubleElim:
		return 4
	default:
		return 2
	}
}

// NewTournament constructs a tournament in StatusRegistration. ids mints
// player and match identifiers; pass UUIDSupplier{} for production use.
func NewTournament(config TournamentConfig, ids IDSupplier) *Tournament {
	if config.PointsForWin == 0 && config.PointsForDraw == 0 {
		config.PointsForWin = 1
		config.PointsForDraw = 0.5
	}
	if config.BestOf == 0 {
		config.BestOf = 3
	}
	if len(config.Tiebreakers) == 0 {
		config.Tiebreakers = []Tiebreaker{
			TiebreakerOpponentMatchWinPct,
			TiebreakerGameWinPct,
			TiebreakerOpponentGameWinPct,
		}
	}

	log := config.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(discardWriter{})
		log = logrus.NewEntry(l)
	}

	return &Tournament{
		config:        config,
		ids:           ids,
		log:           log,
		players:       map[PlayerID]*Player{},
		matches:       map[MatchID]*Match{},
		currentRound:  0,
		status:        StatusRegistration,
		playoffFormat: config.Playoffs,
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Players returns the tournament's players in registration order.
func (t *Tournament) Players() []Player {
	out := make([]Player, 0, len(t.playerOrder))
	for _, id := range t.playerOrder {
		out = append(out, *t.players[id])
	}
	return out
}

// Matches returns the tournament's matches in creation order. WinnersPath
// and LosersPath are filled in from the routing tables at snapshot time:
// those tables, not the struct fields, are the authoritative record a
// withdrawal rewires.
func (t *Tournament) Matches() []Match {
	out := make([]Match, 0, len(t.matchOrder))
	for _, id := range t.matchOrder {
		m := *t.matches[id]
		if ref, ok := t.winnersFeed[id]; ok {
			m.WinnersPath = ref.target
		}
		if ref, ok := t.losersFeed[id]; ok {
			m.LosersPath = ref.target
		}
		out = append(out, m)
	}
	return out
}

// Match returns a single match by id with WinnersPath/LosersPath resolved
// the same way Matches() resolves them.
func (t *Tournament) Match(id MatchID) (Match, bool) {
	src, ok := t.matches[id]
	if !ok {
		return Match{}, false
	}
	m := *src
	if ref, ok := t.winnersFeed[id]; ok {
		m.WinnersPath = ref.target
	}
	if ref, ok := t.losersFeed[id]; ok {
		m.LosersPath = ref.target
	}
	return m, true
}

func (t *Tournament) Status() Status       { return t.status }
func (t *Tournament) CurrentRound() int    { return t.currentRound }
func (t *Tournament) Config() TournamentConfig { return t.config }

// Abort realizes the "any non-terminal -> aborted" transition named in the
// lifecycle table but left without a dedicated operation in spec.md.
func (t *Tournament) Abort() error {
	if t.status == StatusAborted || t.status == StatusFinished {
		return &StateError{Status: t.status, Op: "Abort", Reason: "already terminal"}
	}
	t.status = StatusAborted
	t.log.WithField("round", t.currentRound).Info("tournament aborted")
	return nil
}

// AddPlayer registers a new player. Late additions (after Start) are only
// permitted for Swiss tournaments in StatusActive; earlier completed rounds
// are back-filled per config.LateEntry.
func (t *Tournament) AddPlayer(alias string, seed int) (PlayerID, error) {
	if t.config.PlayerLimit > 0 && len(t.players) >= t.config.PlayerLimit {
		return noneID, &CapacityError{Limit: t.config.PlayerLimit}
	}
	switch t.status {
	case StatusPlayoffs, StatusAborted, StatusFinished:
		return noneID, &StateError{Status: t.status, Op: "AddPlayer", Reason: "tournament is not accepting players"}
	case StatusActive:
		if t.config.Format != FormatSwiss {
			return noneID, &StateError{Status: t.status, Op: "AddPlayer", Reason: "late entry only permitted for swiss"}
		}
	}

	id := t.newPlayerID()
	p := &Player{
		ID:     id,
		Alias:  alias,
		Seed:   seed,
		Active: true,
	}
	t.players[id] = p
	t.playerOrder = append(t.playerOrder, id)

	if t.status == StatusActive {
		t.backfillLateEntry(p)
	}

	t.log.WithFields(logrus.Fields{"player": id, "alias": alias}).Debug("player added")
	return id, nil
}

// backfillLateEntry gives a newly-joined Swiss player a catch-up entry for
// every round already completed, per config.LateEntry.
func (t *Tournament) backfillLateEntry(p *Player) {
	for round := 1; round < t.currentRound; round++ {
		var entry ResultEntry
		entry.MatchID = noneID
		entry.Round = round
		entry.OpponentID = noneID
		switch t.config.LateEntry {
		case LateEntryBye:
			entry.Outcome = OutcomeBye
			entry.MatchPoints = t.config.PointsForWin
			entry.GamePoints = float64(ceilHalf(t.config.BestOf)) * 1.0
			entry.Games = ceilHalf(t.config.BestOf)
		case LateEntryLoss:
			entry.Outcome = OutcomeLoss
			entry.MatchPoints = 0
			entry.GamePoints = 0
			entry.Games = 0
		}
		p.Results = append(p.Results, entry)
		p.MatchCount++
		p.MatchPoints += entry.MatchPoints
		p.GameCount += entry.Games
		p.GamePoints += entry.GamePoints
	}
}

func ceilHalf(bestOf int) int {
	return bestOf/2 + 1
}

// RemovePlayer withdraws a player. In registration it is a plain discard.
// In an active Swiss/round-robin round it forfeits any in-progress match.
// In playoffs/elimination it forfeits and triggers bracket-edge collapse
// (see routing.go).
func (t *Tournament) RemovePlayer(id PlayerID) error {
	p, ok := t.players[id]
	if !ok {
		return &IdentityError{Kind: "player", ID: string(id)}
	}
	switch t.status {
	case StatusFinished, StatusAborted:
		return &StateError{Status: t.status, Op: "RemovePlayer", Reason: "tournament is terminal"}
	case StatusRegistration:
		p.removed = true
		p.Active = false
		t.removePlayerRecord(id)
		return nil
	}

	if m := t.activeMatchFor(id); m != nil {
		if m.elimination {
			if err := t.forfeitEliminationMatch(m, id); err != nil {
				return err
			}
		} else {
			forfeitWins := ceilHalf(t.config.BestOf)
			var result Result
			if m.PlayerOne == id {
				result = Result{PlayerOneWins: 0, PlayerTwoWins: forfeitWins}
			} else {
				result = Result{PlayerOneWins: forfeitWins, PlayerTwoWins: 0}
			}
			if err := t.applyStandardResult(m, result); err != nil {
				return err
			}
		}
	}

	p.Active = false
	p.removed = true
	p.removedInRound = t.currentRound

	if t.config.Format == FormatDoubleRoundRobin || t.config.Format == FormatRoundRobin {
		t.clearFuturePairings(id)
	}

	t.log.WithField("player", id).Info("player removed")
	return nil
}

// removePlayerRecord fully discards a player registered but never paired.
func (t *Tournament) removePlayerRecord(id PlayerID) {
	delete(t.players, id)
	for i, pid := range t.playerOrder {
		if pid == id {
			t.playerOrder = append(t.playerOrder[:i], t.playerOrder[i+1:]...)
			break
		}
	}
}

// clearFuturePairings nulls a withdrawn player's slot in every
// not-yet-played round-robin match, per spec.md §4.1.
func (t *Tournament) clearFuturePairings(id PlayerID) {
	for _, mid := range t.matchOrder {
		m := t.matches[mid]
		if m.Round <= t.currentRound || m.Reported {
			continue
		}
		if m.PlayerOne == id {
			m.PlayerOne = noneID
			m.Active = false
			m.voided = true
		}
		if m.PlayerTwo == id {
			m.PlayerTwo = noneID
			m.Active = false
			m.voided = true
		}
	}
}

func (t *Tournament) activeMatchFor(id PlayerID) *Match {
	for _, mid := range t.matchOrder {
		m := t.matches[mid]
		if !m.Active {
			continue
		}
		if m.PlayerOne == id || m.PlayerTwo == id {
			return m
		}
	}
	return nil
}

func isElimination(f Format) bool {
	return f == FormatSingleElim || f == FormatDoubleElim
}

// Start moves the tournament from registration to active, applies seed
// sorting, and invokes the round-1 pairing generator.
func (t *Tournament) Start() error {
	if t.status != StatusRegistration {
		return &StateError{Status: t.status, Op: "Start", Reason: "already started"}
	}
	n := 0
	for _, id := range t.playerOrder {
		if t.players[id].Active {
			n++
		}
	}
	need := minPlayers(t.config.Format)
	if n < need {
		return &StateError{Status: t.status, Op: "Start", Reason: fmt.Sprintf("not enough players registered: need at least %d", need)}
	}

	if t.config.Sorting != SortNone {
		t.sortPlayerOrderBySeed()
	}

	t.status = StatusActive
	t.currentRound = 1
	t.startTime = startTimeNow()

	if err := t.pairRoundForFormat(); err != nil {
		return err
	}
	t.materializeByes(t.currentRound)

	t.log.WithFields(logrus.Fields{"format": t.config.Format, "players": n}).Info("tournament started")
	return nil
}

// startTimeNow is the single place Start reads the clock; it simply wraps
// time.Now(). Nothing in the package reads startTime back, so tests never
// observe it.
func startTimeNow() time.Time { return time.Now() }

func (t *Tournament) sortPlayerOrderBySeed() {
	sort.SliceStable(t.playerOrder, func(i, j int) bool {
		a, b := t.players[t.playerOrder[i]].Seed, t.players[t.playerOrder[j]].Seed
		if t.config.Sorting == SortAscending {
			return a < b
		}
		return a > b
	})
}

// activePlayers returns active, non-removed players in current playerOrder.
func (t *Tournament) activePlayers() []*Player {
	out := make([]*Player, 0, len(t.playerOrder))
	for _, id := range t.playerOrder {
		p := t.players[id]
		if p.Active && !p.removed {
			out = append(out, p)
		}
	}
	return out
}

func (t *Tournament) addMatch(m *Match) {
	t.matches[m.ID] = m
	t.matchOrder = append(t.matchOrder, m.ID)
}

// NextRound advances the tournament once the current round's matches are
// all reported. For Swiss it paves a fresh round; for round-robin it just
// activates the next pre-built round; it applies the playoff cut or
// finishes the tournament when the scheduled rounds are exhausted.
func (t *Tournament) NextRound() error {
	if t.status != StatusActive {
		return &StateError{Status: t.status, Op: "NextRound", Reason: "tournament is not active"}
	}
	for _, mid := range t.matchOrder {
		if t.matches[mid].Active {
			return &StateError{Status: t.status, Op: "NextRound", Reason: "round has unreported matches"}
		}
	}

	if t.currentRound >= t.scheduledRounds {
		if t.config.Playoffs == PlayoffNone {
			t.status = StatusFinished
			t.log.Info("tournament finished")
			return nil
		}
		return t.enterPlayoffs()
	}

	t.currentRound++
	if err := t.pairRoundForFormat(); err != nil {
		t.currentRound--
		return err
	}
	t.materializeByes(t.currentRound)
	t.log.WithField("round", t.currentRound).Info("round advanced")
	return nil
}

// enterPlayoffs applies the configured cut and seeds an elimination bracket
// from the survivors, moving status from active to playoffs.
func (t *Tournament) enterPlayoffs() error {
	t.computeTiebreakers()
	ranked := t.sortedStandings(true)
	survivors := t.applyCut(ranked)

	if len(survivors) < minPlayers(PlayoffFormatAsFormat(t.playoffFormat)) {
		return &StateError{Status: t.status, Op: "NextRound", Reason: "cut leaves too few players for playoffs"}
	}

	for _, id := range t.playerOrder {
		t.players[id].Active = false
	}
	for _, p := range survivors {
		t.players[p.ID].Active = true
	}

	t.status = StatusPlayoffs
	t.currentRound++
	ids := make([]PlayerID, 0, len(survivors))
	for _, p := range survivors {
		ids = append(ids, p.ID)
	}
	if err := t.seedEliminationBracket(ids, t.playoffFormat == PlayoffDoubleElim); err != nil {
		return err
	}
	t.materializeByes(t.currentRound)
	t.log.WithField("survivors", len(survivors)).Info("entered playoffs")
	return nil
}

func PlayoffFormatAsFormat(p PlayoffFormat) Format {
	if p == PlayoffDoubleElim {
		return FormatDoubleElim
	}
	return FormatSingleElim
}

// applyCut trims a ranked player list to the playoff field.
func (t *Tournament) applyCut(ranked []Player) []Player {
	switch t.config.Cut.Type {
	case CutRank:
		if t.config.Cut.Limit > 0 && t.config.Cut.Limit < len(ranked) {
			return ranked[:t.config.Cut.Limit]
		}
		return ranked
	case CutPoints:
		out := make([]Player, 0, len(ranked))
		threshold := float64(t.config.Cut.Limit)
		for _, p := range ranked {
			if p.MatchPoints >= threshold {
				out = append(out, p)
			}
		}
		return out
	default:
		return ranked
	}
}

// Standings recomputes tiebreakers and returns players sorted per the
// configured precedence. When activeOnly is true, removed/eliminated
// players are excluded.
func (t *Tournament) Standings(activeOnly bool) []Player {
	t.computeTiebreakers()
	return t.sortedStandings(activeOnly)
}
