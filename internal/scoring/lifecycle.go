package scoring

import "errors"

// MatchStatus tracks where a match sits in its lifecycle.
type MatchStatus string

const (
	StatusNotStarted MatchStatus = "not_started" // No hole records yet
	StatusInProgress MatchStatus = "in_progress" // Some, but not all, holes recorded
	StatusCompleted  MatchStatus = "completed"   // Every hole recorded; card still live
	StatusFinalized  MatchStatus = "finalized"   // Snapshot frozen; live edits no longer count
)

// Label returns the display text for a status, as shown on leaderboards.
func (s MatchStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusFinalized:
		return "Finalized"
	}
	return string(s)
}

// StatusFor derives a match's status from how many holes have been
// recorded against its length, and whether it has been finalized.
// Finalized wins over everything else.
func StatusFor(recordedHoles, matchLength int, finalized bool) MatchStatus {
	switch {
	case finalized:
		return StatusFinalized
	case recordedHoles <= 0:
		return StatusNotStarted
	case recordedHoles >= matchLength:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// Snapshot is the frozen form of a finalized match: the scorecard rows,
// the course holes they were built against, the summary, and the
// classified outcome. Once captured it is served verbatim — later edits
// to the course reference data (or to the live hole records) can never
// shift a finalized result.
type Snapshot struct {
	Rows    []ScorecardRow `json:"rows"`
	Holes   []CourseHole   `json:"holes"`
	Meta    ScorecardMeta  `json:"meta"`
	Outcome Outcome        `json:"outcome"`
}

// ErrNoHoles is returned when a finalize is attempted on a match with
// no recorded holes. The match is left unchanged.
var ErrNoHoles = errors.New("cannot finalize a match with no recorded holes")

// FinalizeScorecard captures the current card and its outcome as an
// immutable snapshot. It fails with ErrNoHoles when nothing has been
// recorded — finalizing an empty card would freeze a meaningless 0–0.
func FinalizeScorecard(card Scorecard, override *BonusOverride) (*Snapshot, error) {
	if card.Meta.HolesRecorded == 0 {
		return nil, ErrNoHoles
	}

	outcome := ClassifyOutcome(
		card.Meta.PointsA,
		card.Meta.PointsB,
		card.Meta.HolesRecorded,
		len(card.ActiveHoles),
		override,
	)

	snapshot := &Snapshot{
		Rows:    make([]ScorecardRow, len(card.Rows)),
		Holes:   make([]CourseHole, len(card.ActiveHoles)),
		Meta:    card.Meta,
		Outcome: outcome,
	}
	copy(snapshot.Rows, card.Rows)
	copy(snapshot.Holes, card.ActiveHoles)
	return snapshot, nil
}

// Action is a lifecycle transition request.
type Action string

const (
	ActionRecordHole Action = "record_hole"
	ActionFinalize   Action = "finalize"
	ActionReset      Action = "reset"
)

// ErrUnknownAction is returned for an action Transition does not know.
var ErrUnknownAction = errors.New("unknown lifecycle action")

// MatchState is the lifecycle-relevant slice of a match: how many holes
// are on record, how long the match is, and the finalized snapshot if
// one has been captured.
type MatchState struct {
	RecordedHoles int
	MatchLength   int
	Finalized     bool
	Snapshot      *Snapshot
}

// Status reports the state's derived lifecycle status.
func (s MatchState) Status() MatchStatus {
	return StatusFor(s.RecordedHoles, s.MatchLength, s.Finalized)
}

// Transition applies a lifecycle action and returns the new state. The
// input state is never mutated.
//
//   - record_hole bumps the recorded-hole count. It is permitted on a
//     finalized match — edits are allowed, they just don't count for
//     standings while the snapshot stands.
//   - finalize freezes the supplied snapshot; it fails with ErrNoHoles
//     when no holes are recorded, leaving the state unchanged.
//   - reset returns the match to not_started from any state: hole count
//     zeroed, snapshot dropped, finalized cleared.
func Transition(state MatchState, action Action, snapshot *Snapshot) (MatchState, error) {
	switch action {
	case ActionRecordHole:
		state.RecordedHoles++
		return state, nil
	case ActionFinalize:
		if state.RecordedHoles == 0 {
			return state, ErrNoHoles
		}
		state.Finalized = true
		state.Snapshot = snapshot
		return state, nil
	case ActionReset:
		state.RecordedHoles = 0
		state.Finalized = false
		state.Snapshot = nil
		return state, nil
	}
	return state, ErrUnknownAction
}
