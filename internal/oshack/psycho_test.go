package oshack

import (
	"strings"
	"testing"
)

func TestCompletePsychoGameRecordsScore(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	tr, err := s.CompletePsychoGame("memory-grid", 80)
	if err != nil {
		t.Fatalf("complete game: %v", err)
	}
	if tr.Game.ID != "memory-grid" {
		t.Errorf("expected game memory-grid, got %q", tr.Game.ID)
	}
	if tr.Entry.Score != 80 || tr.Entry.MaxScore != 100 || tr.Entry.Percentage != 80 {
		t.Errorf("unexpected entry %+v", tr.Entry)
	}
	if s.PsychoResults.CompletedGames != 1 {
		t.Errorf("expected 1 completed game, got %d", s.PsychoResults.CompletedGames)
	}
}

func TestPsychoAggregates(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	if _, err := s.CompletePsychoGame("memory-grid", 80); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CompletePsychoGame("logic-math", 100); err != nil {
		t.Fatal(err)
	}

	r := s.PsychoResults
	if r.TotalScore != 180 {
		t.Errorf("expected total 180, got %d", r.TotalScore)
	}
	if r.AverageScore != 90 {
		t.Errorf("expected average 90, got %d", r.AverageScore)
	}
}

func TestPsychoRescoreOverwrites(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	if _, err := s.CompletePsychoGame("memory-grid", 40); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CompletePsychoGame("memory-grid", 90); err != nil {
		t.Fatal(err)
	}

	r := s.PsychoResults
	if r.CompletedGames != 1 {
		t.Errorf("re-score must not add a game; got %d", r.CompletedGames)
	}
	if r.Scores["memory-grid"].Score != 90 {
		t.Errorf("expected overwritten score 90, got %d", r.Scores["memory-grid"].Score)
	}
}

func TestPsychoScoreClamped(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	tr, err := s.CompletePsychoGame("memory-grid", 150)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Entry.Score != 100 {
		t.Errorf("expected clamp to 100, got %d", tr.Entry.Score)
	}

	tr, err = s.CompletePsychoGame("logic-math", -5)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Entry.Score != 0 {
		t.Errorf("expected clamp to 0, got %d", tr.Entry.Score)
	}
}

func TestSkipPsychoGame(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	tr, err := s.SkipPsychoGame("speed-typing")
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if !tr.Entry.Skipped || tr.Entry.Score != 100 {
		t.Errorf("expected skipped entry at 100, got %+v", tr.Entry)
	}

	// A real score afterwards overwrites the skip marker.
	tr, err = s.CompletePsychoGame("speed-typing", 60)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Entry.Skipped {
		t.Error("real completion must clear the skipped marker")
	}
}

func TestPsychoBatteryCompletes(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)

	var last PsychoTransition
	for _, g := range PsychoGames {
		tr, err := s.CompletePsychoGame(g.ID, 70)
		if err != nil {
			t.Fatalf("completing %s: %v", g.ID, err)
		}
		last = tr
	}

	if !s.IsCompleted {
		t.Error("expected session completed after all games")
	}
	if !last.TestsComplete {
		t.Error("expected TestsComplete on the final submission")
	}
	if !strings.HasPrefix(s.SuccessCode, "PSYCHO-") {
		t.Errorf("unexpected success code %q", s.SuccessCode)
	}

	// Re-scoring after completion keeps the code and stays silent.
	code := s.SuccessCode
	tr, err := s.CompletePsychoGame(PsychoGames[0].ID, 100)
	if err != nil {
		t.Fatal(err)
	}
	if tr.TestsComplete {
		t.Error("re-score after completion must not re-announce")
	}
	if s.SuccessCode != code {
		t.Errorf("success code changed: %q -> %q", code, s.SuccessCode)
	}
}

func TestPsychoUnknownGame(t *testing.T) {
	s := NewSession("bob", KindPsychoTest)
	if _, err := s.CompletePsychoGame("no-such-game", 50); err == nil {
		t.Fatal("expected error for unknown game")
	}
}

func TestPsychoWrongKind(t *testing.T) {
	s := NewSession("alice", KindScenario)
	if _, err := s.CompletePsychoGame("memory-grid", 50); err != ErrWrongKind {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}
