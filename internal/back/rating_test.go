package back // nolint:testpackage

import (
	"math"
	"testing"
)

func testSettings() Settings {
	return DefaultSettings()
}

func provenPlayer(rating float64) Player {
	p := NewPlayer("proven")
	p.Rating = rating
	p.MatchesPlayed = 100
	return p
}

// The reference scenario: equal ratings, timed 6-2, both players past their
// ramp. Expected share 0.5, actual 0.75, delta 0.8 × 0.25 = 0.2.
func TestComputeUpdateReferenceScenario(t *testing.T) {
	a, b := provenPlayer(5.0), provenPlayer(5.0)
	update := computeUpdate(a, b, ValidatedScore{GamesA: 6, GamesB: 2}, testSettings())

	assertFloat(t, "ExpectedA", 0.5, update.ExpectedA)
	assertFloat(t, "ActualA", 0.75, update.ActualA)
	assertFloat(t, "DeltaA", 0.2, update.DeltaA)
	assertFloat(t, "NewRatingA", 5.2, update.NewRatingA)
	assertFloat(t, "NewRatingB", 4.8, update.NewRatingB)
}

func TestComputeUpdateIsSymmetric(t *testing.T) {
	a, b := provenPlayer(5.7), provenPlayer(4.9)
	score := ValidatedScore{GamesA: 6, GamesB: 3}
	mirror := ValidatedScore{GamesA: 3, GamesB: 6}

	fromA := computeUpdate(a, b, score, testSettings())
	fromB := computeUpdate(b, a, mirror, testSettings())

	assertFloat(t, "ExpectedA", 1.0-fromA.ExpectedA, fromB.ExpectedA)
	assertFloat(t, "ActualA", 1.0-fromA.ActualA, fromB.ActualA)
	assertFloat(t, "DeltaA", -fromA.DeltaA, fromB.DeltaA)
	assertFloat(t, "NewRatingA", fromA.NewRatingB, fromB.NewRatingA)
	assertFloat(t, "NewRatingB", fromA.NewRatingA, fromB.NewRatingB)
}

func TestComputeUpdateIsZeroSum(t *testing.T) {
	// One newcomer, one veteran: the lower of the two K ramps applies to
	// both sides so the exchange stays zero-sum.
	a, b := NewPlayer("newcomer"), provenPlayer(6.1)
	update := computeUpdate(a, b, ValidatedScore{GamesA: 2, GamesB: 6}, testSettings())

	assertFloat(t, "rating sum", a.Rating+b.Rating, update.NewRatingA+update.NewRatingB)
}

func TestComputeUpdateMonotonicity(t *testing.T) {
	a, b := provenPlayer(5.3), provenPlayer(5.9)
	const total = 8

	prev := math.Inf(-1)
	for gamesA := 0; gamesA <= total; gamesA++ {
		score := ValidatedScore{GamesA: gamesA, GamesB: total - gamesA}
		update := computeUpdate(a, b, score, testSettings())
		if update.DeltaA < prev {
			t.Fatalf("deltaA decreased from %f to %f at %d games", prev, update.DeltaA, gamesA)
		}
		prev = update.DeltaA
	}
}

func TestExpectedGameShareSpread(t *testing.T) {
	// A bigger d flattens the curve: the same gap predicts a share closer
	// to 0.5.
	sharp := expectedGameShare(6.0, 5.0, 1.0)
	flat := expectedGameShare(6.0, 5.0, 4.0)

	if sharp <= flat {
		t.Errorf("expected sharper curve to predict more, got %f <= %f", sharp, flat)
	}
	if flat <= 0.5 {
		t.Errorf("a rating advantage must predict more than half the games, got %f", flat)
	}
}

func TestRampFactorBounds(t *testing.T) {
	const ramp = 10

	if v := rampFactor(0, ramp); v != 2.0 {
		t.Errorf("expected 2.0 on a first match, got %f", v)
	}
	if v := rampFactor(ramp, ramp); v != 1.0 {
		t.Errorf("expected exactly 1.0 at the end of the ramp, got %f", v)
	}
	if v := rampFactor(ramp*10, ramp); v != 1.0 {
		t.Errorf("expected 1.0 long past the ramp, got %f", v)
	}

	prev := rampFactor(0, ramp)
	for played := 1; played < ramp; played++ {
		v := rampFactor(played, ramp)
		if v >= prev {
			t.Fatalf("ramp factor must strictly decrease, got %f then %f at %d", prev, v, played)
		}
		if v < 1.0 {
			t.Fatalf("ramp factor went below 1.0 at %d matches: %f", played, v)
		}
		prev = v
	}
}

func assertFloat(t *testing.T, what string, expected, actual float64) {
	t.Helper()

	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %f, got %f", what, expected, actual)
	}
}
