package back

import "math"

// A RatingUpdate is the outcome of running one validated match through the
// engine. DeltaA is from player A's perspective, B's delta is its negation.
type RatingUpdate struct {
	ExpectedA  float64
	ActualA    float64
	DeltaA     float64
	NewRatingA float64
	NewRatingB float64
}

// expectedGameShare maps the rating gap to the share of games A should win.
// A zero gap predicts 0.5, a larger d flattens the curve.
func expectedGameShare(ratingA, ratingB, d float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/d))
}

// rampFactor makes new players move faster: 2.0 on their first match,
// decaying linearly to 1.0 once they played rampMatches matches.
func rampFactor(matchesPlayed, rampMatches int) float64 {
	if rampMatches <= 0 || matchesPlayed >= rampMatches {
		return 1.0
	}

	return 2.0 - float64(matchesPlayed)/float64(rampMatches)
}

// sharedK is the effective learning rate for both sides of a match.
// Each player has their own ramp but we apply the lower of the two to both,
// which keeps the exchange strictly zero-sum (deltaB == -deltaA) and lets the
// Match row store a single delta.
func sharedK(a, b Player, s Settings) float64 {
	return s.BaseK * math.Min(
		rampFactor(a.MatchesPlayed, s.RampMatches),
		rampFactor(b.MatchesPlayed, s.RampMatches),
	)
}

// computeUpdate is the rating engine. It is a pure function of its inputs,
// all state lives in the Player rows and the Settings singleton.
func computeUpdate(a, b Player, score ValidatedScore, s Settings) RatingUpdate {
	actualA := float64(score.GamesA) / float64(score.total())
	expectedA := expectedGameShare(a.Rating, b.Rating, s.D)
	deltaA := sharedK(a, b, s) * (actualA - expectedA)

	// No floor: a very low-rated player on a losing streak can in theory go
	// negative, which we accept as a limit of the model.
	return RatingUpdate{
		ExpectedA:  expectedA,
		ActualA:    actualA,
		DeltaA:     deltaA,
		NewRatingA: a.Rating + deltaA,
		NewRatingB: b.Rating - deltaA,
	}
}
