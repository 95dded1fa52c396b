package back

import (
	"database/sql"
	"errors"
	"fmt"
	"matchplay/internal/util"

	"github.com/jmoiron/sqlx"
)

// A MatchResult is what the caller gets back after a successful submission,
// everything from player A's perspective.
type MatchResult struct {
	MatchID    util.UUIDAsBlob
	ExpectedA  float64
	ActualA    float64
	DeltaA     float64
	NewRatingA float64
	NewRatingB float64
}

// SubmitMatch validates a reported scoreline, runs the rating engine, and
// persists the new ratings plus one Match row, all in a single transaction.
// It either fully commits or fully aborts, a delta is never applied to one
// player only.
func (b *Back) SubmitMatch(
	playerAID, playerBID, formatID util.UUIDAsBlob,
	gamesA, gamesB int,
) (result MatchResult, _ error) {
	if playerAID == playerBID {
		return MatchResult{}, ruleErrorf(RuleSamePlayer, "a player can't play against themselves")
	}

	if err := b.transaction(func(tx *sqlx.Tx) error {
		playerA, err := getPlayerByID(tx, playerAID)
		if err != nil {
			return fmt.Errorf("unable to fetch player A: %w", err)
		}

		playerB, err := getPlayerByID(tx, playerBID)
		if err != nil {
			return fmt.Errorf("unable to fetch player B: %w", err)
		}

		format, err := getFormatByID(tx, formatID)
		if err != nil {
			return fmt.Errorf("unable to fetch format: %w", err)
		}

		settings, err := getSettings(tx)
		if err != nil {
			return fmt.Errorf("unable to fetch settings: %w", err)
		}

		score, err := validateScore(format, gamesA, gamesB)
		if err != nil {
			return err
		}

		if score.total() < settings.MinGames {
			return ruleErrorf(
				RuleIneligibleMatch,
				"%d games is too short to be meaningful, need at least %d",
				score.total(), settings.MinGames,
			)
		}

		update := computeUpdate(playerA, playerB, score, settings)

		match := NewMatch(playerA, playerB, format, score, update)
		if err := match.insert(tx); err != nil {
			return fmt.Errorf("unable to insert match: %w", err)
		}

		playerA.Rating = update.NewRatingA
		playerA.MatchesPlayed++
		if err := playerA.update(tx); err != nil {
			return fmt.Errorf("unable to update player A: %w", err)
		}

		playerB.Rating = update.NewRatingB
		playerB.MatchesPlayed++
		if err := playerB.update(tx); err != nil {
			return fmt.Errorf("unable to update player B: %w", err)
		}

		result = MatchResult{
			MatchID:    match.ID,
			ExpectedA:  update.ExpectedA,
			ActualA:    update.ActualA,
			DeltaA:     update.DeltaA,
			NewRatingA: update.NewRatingA,
			NewRatingB: update.NewRatingB,
		}

		return nil
	}); err != nil {
		return MatchResult{}, err
	}

	return result, nil
}

// SubmitDiscordMatch is the bot-facing entry point: the author is player A,
// the opponent and format are given by name and shortcode.
func (b *Back) SubmitDiscordMatch(
	discordID, opponentName, shortCode string,
	gamesA, gamesB int,
) (MatchResult, error) {
	var playerA, playerB Player
	var format MatchFormat

	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		playerA, err = getPlayerByDiscordID(tx, discordID)
		if errors.Is(err, sql.ErrNoRows) {
			return util.ErrPublic("you are not registered yet, use `!register`")
		}
		if err != nil {
			return err
		}

		playerB, err = getPlayerByName(tx, opponentName)
		if errors.Is(err, sql.ErrNoRows) {
			return util.ErrPublic(fmt.Sprintf("there is no player named `%s`", opponentName))
		}
		if err != nil {
			return err
		}

		format, err = getFormatByShortCode(tx, shortCode)
		if errors.Is(err, sql.ErrNoRows) {
			return util.ErrPublic(fmt.Sprintf(
				"there is no format with shortcode `%s`, see `!formats`", shortCode,
			))
		}

		return err
	}); err != nil {
		return MatchResult{}, err
	}

	return b.SubmitMatch(playerA.ID, playerB.ID, format.ID, gamesA, gamesB)
}
