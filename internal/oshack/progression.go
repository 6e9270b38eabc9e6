package oshack

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownObjective = errors.New("unknown objective")
	ErrUnknownGame      = errors.New("unknown psycho game")
	ErrWrongKind        = errors.New("operation does not apply to this session kind")
)

// Transition describes what a CompleteObjective call did. AlreadyDone means
// the call was a no-op because the objective was completed before.
type Transition struct {
	Objective   *Objective
	AlreadyDone bool
	// MissionComplete is true only on the transition that finished the whole
	// chain; SuccessCode then carries the freshly generated code.
	MissionComplete bool
	SuccessCode     string
}

// CompleteObjective appends an objective to the completed set and advances
// the chain. It is idempotent: completing an already-completed id never
// advances twice and never regenerates the success code. Completing the
// terminal node marks the session complete and generates the code once.
func (s *Session) CompleteObjective(id int) (Transition, error) {
	if s.SessionType != KindScenario {
		return Transition{}, ErrWrongKind
	}
	obj, ok := ObjectiveByID(id)
	if !ok {
		return Transition{}, fmt.Errorf("%w: %d", ErrUnknownObjective, id)
	}

	for _, done := range s.CompletedObjectives {
		if done == id {
			return Transition{Objective: obj, AlreadyDone: true}, nil
		}
	}

	s.CompletedObjectives = append(s.CompletedObjectives, id)
	s.Touch()

	tr := Transition{Objective: obj}
	if obj.NextObjective != 0 {
		s.CurrentObjective = obj.NextObjective
		return tr, nil
	}

	s.IsCompleted = true
	if s.SuccessCode == "" {
		s.SuccessCode = GenerateSuccessCode(s.UserID)
	}
	tr.MissionComplete = true
	tr.SuccessCode = s.SuccessCode
	return tr, nil
}

// PsychoTransition describes what a psychotest score submission did.
type PsychoTransition struct {
	Game  *PsychoGame
	Entry PsychoGameScore
	// TestsComplete is true only on the submission that scored the final
	// game of the battery; SuccessCode then carries the generated code.
	TestsComplete bool
	SuccessCode   string
}

// CompletePsychoGame records a score for one game of the battery and
// recomputes the aggregates. Re-scoring a game overwrites its entry: the
// score ledger is an upsert map, unlike the append-only objective set.
func (s *Session) CompletePsychoGame(gameID string, score int) (PsychoTransition, error) {
	return s.recordPsychoScore(gameID, score, false)
}

// SkipPsychoGame force-scores a game at 100 with a skipped marker. Used by
// the admin panel; runs the same aggregate recompute as a real completion.
func (s *Session) SkipPsychoGame(gameID string) (PsychoTransition, error) {
	return s.recordPsychoScore(gameID, 100, true)
}

func (s *Session) recordPsychoScore(gameID string, score int, skipped bool) (PsychoTransition, error) {
	if s.SessionType != KindPsychoTest {
		return PsychoTransition{}, ErrWrongKind
	}
	game, ok := PsychoGameByID(gameID)
	if !ok {
		return PsychoTransition{}, fmt.Errorf("%w: %q", ErrUnknownGame, gameID)
	}
	if s.PsychoResults == nil {
		s.PsychoResults = newPsychoResults()
	}

	score = ClampScore(score)
	entry := PsychoGameScore{
		Score:       score,
		MaxScore:    100,
		Percentage:  score,
		Skipped:     skipped,
		CompletedAt: nowMillis(),
	}
	s.PsychoResults.Scores[gameID] = entry
	s.recomputePsychoAggregates()
	s.Touch()

	tr := PsychoTransition{Game: game, Entry: entry}
	if s.PsychoResults.CompletedGames >= TotalPsychoGames && !s.IsCompleted {
		s.IsCompleted = true
		s.SuccessCode = GeneratePsychoSuccessCode()
		tr.TestsComplete = true
		tr.SuccessCode = s.SuccessCode
	}
	return tr, nil
}

func (s *Session) recomputePsychoAggregates() {
	r := s.PsychoResults
	r.CompletedGames = len(r.Scores)
	r.TotalGames = TotalPsychoGames

	total, percentSum := 0, 0
	for _, e := range r.Scores {
		total += e.Score
		percentSum += e.Percentage
	}
	r.TotalScore = total
	if len(r.Scores) == 0 {
		r.AverageScore = 0
		return
	}
	r.AverageScore = int(math.Round(float64(percentSum) / float64(len(r.Scores))))
}

// ClampScore bounds a mini-game score to the 0..100 contract.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
