package oshack

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GameCategory groups psychotechnical mini-games by the faculty they test.
type GameCategory string

const (
	CategoryMemory    GameCategory = "memory"
	CategoryLogic     GameCategory = "logic"
	CategoryAttention GameCategory = "attention"
	CategorySpeed     GameCategory = "speed"
	CategorySpatial   GameCategory = "spatial"
)

// Difficulty is advisory; it does not affect scoring.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PsychoGame is one catalog entry of the psychotechnical test battery.
type PsychoGame struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    GameCategory `json:"category"`
	Icon        string       `json:"icon"`
	Difficulty  Difficulty   `json:"difficulty"`
	MaxScore    int          `json:"maxScore"`
	TimeLimit   int          `json:"timeLimit,omitempty"` // seconds
}

// TotalPsychoGames is the fixed size of the battery; completing all of them
// finishes a psychotest session.
const TotalPsychoGames = 11

// PsychoGames is the fixed battery: eleven games across five categories.
var PsychoGames = []PsychoGame{
	{ID: "memory-grid", Name: "Memory Grid", Description: "Memorize the lit cells and reproduce the pattern", Category: CategoryMemory, Icon: "🧠", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 60},
	{ID: "memory-sequence", Name: "Simon Sequence", Description: "Repeat ever longer color sequences", Category: CategoryMemory, Icon: "🎨", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 120},
	{ID: "memory-cards", Name: "Card Pairs", Description: "Find every pair of matching cards", Category: CategoryMemory, Icon: "🃏", Difficulty: DifficultyEasy, MaxScore: 100, TimeLimit: 90},
	{ID: "logic-patterns", Name: "Number Series", Description: "Find the next number in the series", Category: CategoryLogic, Icon: "🔢", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 120},
	{ID: "logic-math", Name: "Mental Math", Description: "Solve arithmetic problems quickly", Category: CategoryLogic, Icon: "➕", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 60},
	{ID: "attention-stroop", Name: "Stroop Test", Description: "Name the ink color, not the written word", Category: CategoryAttention, Icon: "👁️", Difficulty: DifficultyHard, MaxScore: 100, TimeLimit: 45},
	{ID: "attention-target", Name: "Moving Target", Description: "Click the targets as they appear", Category: CategoryAttention, Icon: "🎯", Difficulty: DifficultyEasy, MaxScore: 100, TimeLimit: 30},
	{ID: "speed-reaction", Name: "Reaction Time", Description: "Click as soon as the color changes", Category: CategorySpeed, Icon: "⚡", Difficulty: DifficultyEasy, MaxScore: 100, TimeLimit: 30},
	{ID: "speed-typing", Name: "Fast Typing", Description: "Type the shown letters as fast as you can", Category: CategorySpeed, Icon: "⌨️", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 30},
	{ID: "spatial-maze", Name: "Maze", Description: "Find the way out of the maze", Category: CategorySpatial, Icon: "🗺️", Difficulty: DifficultyMedium, MaxScore: 100, TimeLimit: 60},
	{ID: "spatial-rotation", Name: "Mental Rotation", Description: "Identify the shape after rotation", Category: CategorySpatial, Icon: "🔄", Difficulty: DifficultyHard, MaxScore: 100, TimeLimit: 90},
}

var psychoGamesByID = func() map[string]*PsychoGame {
	m := make(map[string]*PsychoGame, len(PsychoGames))
	for i := range PsychoGames {
		m[PsychoGames[i].ID] = &PsychoGames[i]
	}
	return m
}()

// PsychoGameByID looks up a battery entry; ok is false for unknown ids.
func PsychoGameByID(id string) (*PsychoGame, bool) {
	g, ok := psychoGamesByID[id]
	return g, ok
}

// GeneratePsychoSuccessCode builds the psychotest completion code.
func GeneratePsychoSuccessCode() string {
	b := make([]byte, 3)
	rand.Read(b)
	return "PSYCHO-" + strings.ToUpper(hex.EncodeToString(b))
}
