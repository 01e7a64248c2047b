package league

import "fmt"

// Outcome classifies one side of a match result.
type Outcome string

const (
	Win  Outcome = "WIN"
	Draw Outcome = "DRAW"
	Loss Outcome = "LOSS"
)

// Points awarded per outcome.
const (
	PointsForWin  = 3
	PointsForDraw = 1
	PointsForLoss = 0
)

// Valid reports whether o is one of the three outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case Win, Draw, Loss:
		return true
	}
	return false
}

// Points returns the points o is worth. Unknown outcomes are worth nothing.
func (o Outcome) Points() int {
	switch o {
	case Win:
		return PointsForWin
	case Draw:
		return PointsForDraw
	}
	return PointsForLoss
}

// Outcomes returns the outcome for each side given the two scores.
func Outcomes(score1, score2 int) (Outcome, Outcome) {
	switch {
	case score1 > score2:
		return Win, Loss
	case score1 < score2:
		return Loss, Win
	default:
		return Draw, Draw
	}
}

// Record is a team's cumulative win/draw/loss/points/goals ledger.
// Points stay equal to 3*Wins + Draws as long as the record only changes
// through Apply and Reverse.
type Record struct {
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	Points       int `json:"points"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// Apply returns r with one result added.
func (r Record) Apply(o Outcome, goalsFor, goalsAgainst int) (Record, error) {
	if err := checkResult(o, goalsFor, goalsAgainst); err != nil {
		return r, err
	}
	switch o {
	case Win:
		r.Wins++
	case Draw:
		r.Draws++
	case Loss:
		r.Losses++
	}
	r.Points += o.Points()
	r.GoalsFor += goalsFor
	r.GoalsAgainst += goalsAgainst
	return r, nil
}

// Reverse returns r with one previously applied result taken out. It refuses
// to produce negative counters, which would mean the result was never applied.
func (r Record) Reverse(o Outcome, goalsFor, goalsAgainst int) (Record, error) {
	if err := checkResult(o, goalsFor, goalsAgainst); err != nil {
		return r, err
	}
	next := r
	switch o {
	case Win:
		next.Wins--
	case Draw:
		next.Draws--
	case Loss:
		next.Losses--
	}
	next.Points -= o.Points()
	next.GoalsFor -= goalsFor
	next.GoalsAgainst -= goalsAgainst
	if next.Wins < 0 || next.Draws < 0 || next.Losses < 0 || next.Points < 0 ||
		next.GoalsFor < 0 || next.GoalsAgainst < 0 {
		return r, fmt.Errorf("%w: reversing %s %d-%d", ErrInconsistent, o, goalsFor, goalsAgainst)
	}
	return next, nil
}

func checkResult(o Outcome, goalsFor, goalsAgainst int) error {
	if !o.Valid() {
		return Invalid("unknown outcome %q", o)
	}
	if goalsFor < 0 || goalsAgainst < 0 {
		return Invalid("scores must not be negative (got %d-%d)", goalsFor, goalsAgainst)
	}
	return nil
}
