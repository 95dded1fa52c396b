package back

// A ValidatedScore is a scoreline that passed the rules of its MatchFormat
// and can be fed to the rating engine.
type ValidatedScore struct {
	GamesA, GamesB int
}

func (s ValidatedScore) total() int {
	return s.GamesA + s.GamesB
}

// validateScore checks a reported scoreline against a format. It is pure:
// same inputs, same verdict. The minimum total-games eligibility check is not
// done here, it needs the Settings and belongs to the submission flow.
func validateScore(format MatchFormat, gamesA, gamesB int) (ValidatedScore, error) {
	if gamesA < 0 || gamesB < 0 {
		return ValidatedScore{}, ruleErrorf(RuleInvalidScoreline, "game counts can't be negative")
	}

	if gamesA == 0 && gamesB == 0 {
		return ValidatedScore{}, ruleErrorf(RuleEmptyMatch, "a 0-0 match carries no information")
	}

	switch format.Kind {
	case FormatKindTimed:
		// The clock decides when a timed match ends, any scoreline
		// (ties included) is a legitimate final count.
	case FormatKindOneSet:
		if err := validateSetScore(format, gamesA, gamesB); err != nil {
			return ValidatedScore{}, err
		}
	default:
		return ValidatedScore{}, ruleErrorf(RuleInvalidScoreline, "unknown format kind %d", format.Kind)
	}

	return ValidatedScore{GamesA: gamesA, GamesB: gamesB}, nil
}

func validateSetScore(format MatchFormat, gamesA, gamesB int) error {
	target := int(format.TargetGames.Int64)
	if !format.TargetGames.Valid || target <= 0 {
		return ruleErrorf(RuleInvalidScoreline, "format %s has no valid game target", format.Name)
	}

	if gamesA == gamesB {
		return ruleErrorf(RuleInvalidScoreline, "a set can't end in a %d-%d tie", gamesA, gamesB)
	}

	win, lose := gamesA, gamesB
	if win < lose {
		win, lose = lose, win
	}

	switch {
	case win < target:
		return ruleErrorf(
			RuleInvalidScoreline,
			"the winner must reach %d games, got %d", target, win,
		)
	case win == target && win-lose < format.WinBy:
		return ruleErrorf(
			RuleInvalidScoreline,
			"the winner must lead by at least %d games, got %d-%d", format.WinBy, win, lose,
		)
	case win > target && win-lose != format.WinBy:
		// Going past the target means the set was in extension, which
		// ends the moment someone leads by the win-by margin. This is
		// what makes an 8-1 in a first-to-6 impossible.
		return ruleErrorf(
			RuleInvalidScoreline,
			"a set beyond %d games ends at exactly %d games of margin, got %d-%d",
			target, format.WinBy, win, lose,
		)
	}

	return nil
}
