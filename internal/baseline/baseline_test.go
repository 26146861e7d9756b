package baseline

import (
	"math"
	"testing"

	"github.com/pable/go-dota-insight/internal/model"
)

func TestBracket(t *testing.T) {
	tests := []struct {
		rating int
		want   int
	}{
		{0, 3}, // unknown rating defaults to the middle
		{-1, 3},
		{1, 1},
		{1539, 1},
		{1540, 2},
		{2309, 2},
		{2310, 3},
		{3079, 3},
		{3080, 4},
		{3849, 4},
		{3850, 5},
		{12000, 5},
	}
	for _, tc := range tests {
		if got := Bracket(tc.rating); got != tc.want {
			t.Errorf("Bracket(%d) = %d, want %d", tc.rating, got, tc.want)
		}
	}
}

func TestZScore(t *testing.T) {
	if z := ZScore(550, 500, 50); z != 1.0 {
		t.Errorf("z = %v, want 1.0", z)
	}
	if z := ZScore(400, 500, 50); z != -2.0 {
		t.Errorf("z = %v, want -2.0", z)
	}
	if z := ZScore(400, 500, 0); z != 0 {
		t.Errorf("z with zero std = %v, want 0", z)
	}
}

func TestCompare(t *testing.T) {
	c := Compare(430, 500, 70)
	if !c.Available {
		t.Fatal("comparison should be available")
	}
	if math.Abs(c.Z+1.0) > 1e-9 {
		t.Errorf("z = %v, want -1.0", c.Z)
	}
	if c.Deviation != -70 {
		t.Errorf("deviation = %v, want -70", c.Deviation)
	}

	if c := Compare(430, 0, 0); c.Available {
		t.Error("comparison against an empty cohort should be unavailable")
	}
}

// fakeStore records which lookup tiers were hit.
type fakeStore struct {
	exact      *model.Baseline
	anyBracket *model.Baseline
	anyPatch   *model.Baseline
	calls      []string
}

func (s *fakeStore) Baseline(key model.BaselineKey) (*model.Baseline, error) {
	s.calls = append(s.calls, "exact")
	return s.exact, nil
}

func (s *fakeStore) BaselineAnyBracket(heroID int, role model.Role, patch string) (*model.Baseline, error) {
	s.calls = append(s.calls, "anyBracket")
	return s.anyBracket, nil
}

func (s *fakeStore) BaselineAnyPatch(heroID int, role model.Role) (*model.Baseline, error) {
	s.calls = append(s.calls, "anyPatch")
	return s.anyPatch, nil
}

func bl(sample int) *model.Baseline {
	return &model.Baseline{SampleSize: sample}
}

func key() model.BaselineKey {
	return model.BaselineKey{HeroID: 8, Role: model.RoleCarry, Patch: "7.36", Bracket: 3}
}

func TestResolve_ExactHit(t *testing.T) {
	s := &fakeStore{exact: bl(100)}
	got, err := Resolve(s, key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.SampleSize != 100 {
		t.Fatalf("got %+v, want exact row", got)
	}
	if len(s.calls) != 1 {
		t.Errorf("calls = %v, want just the exact tier", s.calls)
	}
}

func TestResolve_FallsBackToAnyBracket(t *testing.T) {
	s := &fakeStore{anyBracket: bl(50)}
	got, err := Resolve(s, key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.SampleSize != 50 {
		t.Fatalf("got %+v, want any-bracket row", got)
	}
}

func TestResolve_FallsBackToAnyPatch(t *testing.T) {
	s := &fakeStore{anyPatch: bl(25)}
	got, err := Resolve(s, key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.SampleSize != 25 {
		t.Fatalf("got %+v, want any-patch row", got)
	}
	want := []string{"exact", "anyBracket", "anyPatch"}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", s.calls, want)
	}
}

func TestResolve_NoPatchSkipsPatchTiers(t *testing.T) {
	s := &fakeStore{anyPatch: bl(10)}
	k := key()
	k.Patch = ""
	got, err := Resolve(s, k)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.SampleSize != 10 {
		t.Fatalf("got %+v, want any-patch row", got)
	}
	if len(s.calls) != 1 || s.calls[0] != "anyPatch" {
		t.Errorf("calls = %v, want [anyPatch]", s.calls)
	}
}

func TestResolve_NothingFound(t *testing.T) {
	s := &fakeStore{}
	got, err := Resolve(s, key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("got %+v, want nil", got)
	}
}
