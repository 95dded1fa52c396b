package back // nolint:testpackage

import (
	"errors"
	"testing"
)

func TestValidateTimedScore(t *testing.T) {
	format := NewTimedFormat("Timed", "timed")

	cases := []struct {
		gamesA, gamesB int
		wantCode       string
	}{
		{6, 2, ""},
		{4, 4, ""}, // ties are fine, the clock decides
		{0, 9, ""},
		{1, 0, ""},
		{0, 0, RuleEmptyMatch},
		{-1, 3, RuleInvalidScoreline},
		{3, -1, RuleInvalidScoreline},
	}

	for k, v := range cases {
		_, err := validateScore(format, v.gamesA, v.gamesB)
		assertRuleCode(t, k, err, v.wantCode)
	}
}

func TestValidateSetScore(t *testing.T) {
	format := NewOneSetFormat("1 set to 6 (win by 2)", "set6", 6, 2)

	cases := []struct {
		gamesA, gamesB int
		wantCode       string
	}{
		{6, 0, ""},
		{6, 4, ""},
		{4, 6, ""}, // B winning is as legal as A winning
		{7, 5, ""}, // margin reached through the deuce extension
		{11, 9, ""},
		{0, 0, RuleEmptyMatch},
		{6, 5, RuleInvalidScoreline},  // margin 1 < win-by 2
		{6, 6, RuleInvalidScoreline},  // sets have no ties
		{5, 3, RuleInvalidScoreline},  // nobody reached the target
		{8, 1, RuleInvalidScoreline},  // can't go past target with that gap
		{7, 6, RuleInvalidScoreline},  // extension ends at exactly 2 of margin
		{10, 2, RuleInvalidScoreline}, // same, the other way up
	}

	for k, v := range cases {
		_, err := validateScore(format, v.gamesA, v.gamesB)
		assertRuleCode(t, k, err, v.wantCode)
	}
}

func TestValidateSetScoreWinByOne(t *testing.T) {
	format := NewOneSetFormat("1 set to 4 (win by 1)", "set4w1", 4, 1)

	cases := []struct {
		gamesA, gamesB int
		wantCode       string
	}{
		{4, 3, ""},
		{4, 0, ""},
		{3, 3, RuleInvalidScoreline},
		{3, 2, RuleInvalidScoreline},
	}

	for k, v := range cases {
		_, err := validateScore(format, v.gamesA, v.gamesB)
		assertRuleCode(t, k, err, v.wantCode)
	}
}

func TestValidateSetScoreWithoutTarget(t *testing.T) {
	format := NewTimedFormat("broken", "broken")
	format.Kind = FormatKindOneSet // TargetGames left NULL

	_, err := validateScore(format, 6, 4)
	assertRuleCode(t, 0, err, RuleInvalidScoreline)
}

func TestValidateScoreIsDeterministic(t *testing.T) {
	format := NewOneSetFormat("1 set to 6 (win by 2)", "set6", 6, 2)

	first, err := validateScore(format, 7, 5)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		again, err := validateScore(format, 7, 5)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("expected %v, got %v", first, again)
		}
	}
}

func assertRuleCode(t *testing.T, k int, err error, wantCode string) {
	t.Helper()

	if wantCode == "" {
		if err != nil {
			t.Errorf("case #%d: unexpected error: %s", k, err)
		}
		return
	}

	var rule RuleError
	if !errors.As(err, &rule) {
		t.Errorf("case #%d: expected a RuleError, got %v", k, err)
		return
	}

	if rule.Code != wantCode {
		t.Errorf("case #%d: expected code %s, got %s (%s)", k, wantCode, rule.Code, rule.Reason)
	}
}
