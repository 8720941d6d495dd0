package tourneycore

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PlayerID and MatchID are opaque identifiers minted by an IDSupplier.
// Routing and player lookups cross-reference by id, never by pointer, so
// that erase/withdrawal rewiring is just editing a string field.
type PlayerID string

type MatchID string

// noneID marks an empty slot: no opponent, no routing target.
const noneID = ""

// Outcome is the result of a single match from one participant's side.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLoss
	OutcomeDraw
	OutcomeBye
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	case OutcomeBye:
		return "bye"
	default:
		return "unknown"
	}
}

// Format selects the pairing generator a tournament uses.
type Format int

const (
	FormatSwiss Format = iota
	FormatRoundRobin
	FormatDoubleRoundRobin
	FormatSingleElim
	FormatDoubleElim
)

// Sorting controls the seed-order applied to players at Start.
type Sorting int

const (
	SortNone Sorting = iota
	SortAscending
	SortDescending
)

// Status is the tournament's lifecycle state.
type Status int

const (
	StatusRegistration Status = iota
	StatusActive
	StatusPlayoffs
	StatusAborted
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusRegistration:
		return "registration"
	case StatusActive:
		return "active"
	case StatusPlayoffs:
		return "playoffs"
	case StatusAborted:
		return "aborted"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// PlayoffFormat names the elimination stage optionally appended to a Swiss
// or round-robin event.
type PlayoffFormat int

const (
	PlayoffNone PlayoffFormat = iota
	PlayoffSingleElim
	PlayoffDoubleElim
)

// CutType selects how the field is trimmed before the playoff stage.
type CutType int

const (
	CutNone CutType = iota
	CutRank
	CutPoints
)

// LateEntryPolicy names how a Swiss player added after round 1 is scored
// for rounds already played.
type LateEntryPolicy int

const (
	LateEntryBye LateEntryPolicy = iota
	LateEntryLoss
)

// Tiebreaker names one of the nine statistics of the tiebreaker module plus
// the tied-cohort-only "versus" comparator.
type Tiebreaker int

const (
	TiebreakerGameWinPct Tiebreaker = iota
	TiebreakerMatchWinPct
	TiebreakerOpponentMatchWinPct
	TiebreakerOpponentGameWinPct
	TiebreakerOpponentOpponentMatchWinPct
	TiebreakerSolkoff
	TiebreakerMedianBuchholz
	TiebreakerSonnebornBerger
	TiebreakerCumulative
	TiebreakerVersus
)

// CutConfig configures the registration trim applied when an event moves
// from its Swiss/round-robin stage into playoffs.
type CutConfig struct {
	Type  CutType
	Limit int
}

// TournamentConfig is the configuration record supplied to NewTournament.
type TournamentConfig struct {
	Format        Format
	Sorting       Sorting
	Consolation   bool
	PlayerLimit   int
	PointsForWin  float64
	PointsForDraw float64
	Rounds        int // Swiss only; 0 = auto = ceil(log2(n))
	Playoffs      PlayoffFormat
	BestOf        int
	Cut           CutConfig
	Tiebreakers   []Tiebreaker
	LateEntry     LateEntryPolicy

	// Logger receives lifecycle events. Nil means silent.
	Logger *logrus.Entry
}

// Result is the raw game score reported for a match.
type Result struct {
	PlayerOneWins int
	PlayerTwoWins int
	Draws         int
}

// ResultEntry is one match's contribution to a player's history.
type ResultEntry struct {
	MatchID     MatchID
	Round       int
	OpponentID  PlayerID // noneID for byes
	Outcome     Outcome
	MatchPoints float64
	GamePoints  float64
	Games       int // games played in this match (wins + losses + draws)
}

// Tiebreakers holds the nine computed statistics plus the opponent-cumulative
// variant and the tied-cohort "versus" value. Recomputed wholesale on every
// Standings call; never maintained incrementally.
type Tiebreakers struct {
	GameWinPct                  float64
	MatchWinPct                 float64
	OpponentMatchWinPct         float64
	OpponentGameWinPct          float64
	OpponentOpponentMatchWinPct float64
	Solkoff                     float64
	MedianBuchholz              float64
	SonnebornBerger             float64
	Cumulative                  float64
	OpponentCumulative          float64
	Versus                      float64
}

// Player is a tournament participant plus its running scoreboard and history.
type Player struct {
	ID          PlayerID
	Alias       string
	Seed        int
	InitialByes int

	MatchCount  int
	MatchPoints float64
	GameCount   int
	GamePoints  float64

	Active     bool
	PairingBye bool

	Results     []ResultEntry
	Tiebreakers Tiebreakers

	removedInRound int // 0 = never removed
	removed        bool
}

// Match is a single pairing, possibly still awaiting its result, possibly
// still awaiting one or both of its participants in an elimination bracket.
type Match struct {
	ID          MatchID
	Round       int
	MatchNumber int

	PlayerOne PlayerID
	PlayerTwo PlayerID

	// Active marks a match awaiting its result now: both slots are filled,
	// Reported is false, and its round has been reached (pre-built
	// round-robin rounds stay inactive until NextRound activates them).
	Active   bool
	Reported bool
	Result   Result

	WinnersPath MatchID // noneID marks the grand final / event final
	LosersPath  MatchID // noneID: loser is eliminated / receives no further play

	IsBye        bool
	IsGrandFinal bool
	// ResetMatch is set only on a double-elimination grand final; it is
	// filled in and activated only if the losers-bracket entrant (PlayerTwo)
	// wins, giving the once-beaten finalist a second match.
	ResetMatch MatchID
	// IsResetMatch marks a bracket-reset match so routing/finish logic
	// treats its completion as always terminal.
	IsResetMatch bool
	// IsConsolation marks a non-terminal third-place match; its completion
	// never changes tournament status.
	IsConsolation bool

	// voided marks a future round-robin match one of whose slots was
	// nulled out by a mid-event withdrawal; it never activates and never
	// counts as a bye.
	voided bool

	// elimination marks a match that belongs to a bracket (built either by
	// a top-level single/double-elimination tournament or by a Swiss/
	// round-robin event's appended playoff stage), so result reporting
	// dispatches to the routing-aware path regardless of current Status.
	elimination bool

	// playerOneSource / playerTwoSource record which match's winner or
	// loser last filled each slot, so EraseResult can retract exactly that
	// contribution without guessing.
	playerOneSource MatchID
	playerTwoSource MatchID

	// bypassed marks a losers-bracket node collapsed by a withdrawal
	// (spec.md §4.4); it is permanently excluded from play.
	bypassed bool
}

// Tournament owns its players and matches exclusively; all cross-references
// are by id.
type Tournament struct {
	config TournamentConfig
	ids    IDSupplier
	log    *logrus.Entry

	players     map[PlayerID]*Player
	playerOrder []PlayerID

	matches    map[MatchID]*Match
	matchOrder []MatchID

	currentRound int
	status       Status
	startTime    time.Time

	// scheduledRounds is the resolved (non-auto) round count for Swiss, or
	// the fixed round count for round-robin/double-round-robin.
	scheduledRounds int

	// finalMatch is the match whose completion finishes the elimination
	// stage (grand final for double-elim, championship match for single-elim).
	finalMatch MatchID

	// playoffFormat is copied from config.Playoffs at construction and
	// selects the bracket type enterPlayoffs seeds after the cut.
	playoffFormat PlayoffFormat

	// winnersFeed/losersFeed are the bracket's static routing tables: for
	// a given source match, which slot of which downstream match its
	// winner (or loser) is wired to. Built once by seedEliminationBracket
	// and never recomputed; withdrawal collapse edits them in place.
	winnersFeed map[MatchID]slotRef
	losersFeed  map[MatchID]slotRef

	// losersFinalMatch is the double-elimination losers bracket's last
	// match, used to tell which side of the grand final a winner came from.
	losersFinalMatch MatchID
}
