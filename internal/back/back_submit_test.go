package back // nolint:testpackage

import (
	"database/sql"
	"errors"
	"io/ioutil"
	"matchplay/internal/util"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

func TestSubmitTimedMatch(t *testing.T) {
	back := createFixturedTestBack(t)

	playerA, playerB := testPlayers(t, back)
	format := testFormat(t, back, "timed")

	result, err := back.SubmitMatch(playerA.ID, playerB.ID, format.ID, 6, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Both players are brand new so both ramps are 2.0 and
	// K = 0.8 × 2.0 = 1.6, delta = 1.6 × (0.75 − 0.5).
	assertFloat(t, "ExpectedA", 0.5, result.ExpectedA)
	assertFloat(t, "ActualA", 0.75, result.ActualA)
	assertFloat(t, "DeltaA", 0.4, result.DeltaA)
	assertFloat(t, "NewRatingA", 5.4, result.NewRatingA)
	assertFloat(t, "NewRatingB", 4.6, result.NewRatingB)

	playerA, err = back.GetPlayer(playerA.ID)
	if err != nil {
		t.Fatal(err)
	}
	playerB, err = back.GetPlayer(playerB.ID)
	if err != nil {
		t.Fatal(err)
	}

	assertFloat(t, "stored rating A", result.NewRatingA, playerA.Rating)
	assertFloat(t, "stored rating B", result.NewRatingB, playerB.Rating)
	if playerA.MatchesPlayed != 1 || playerB.MatchesPlayed != 1 {
		t.Errorf(
			"expected both players at 1 match played, got %d and %d",
			playerA.MatchesPlayed, playerB.MatchesPlayed,
		)
	}
}

// A stored Match snapshots everything the engine consumed, re-running the
// engine on the snapshot must land on the exact stored figures.
func TestMatchIsReproducibleFromItsSnapshot(t *testing.T) {
	back := createFixturedTestBack(t)

	playerA, playerB := testPlayers(t, back)
	format := testFormat(t, back, "set6")

	if _, err := back.SubmitMatch(playerA.ID, playerB.ID, format.ID, 7, 5); err != nil {
		t.Fatal(err)
	}

	history, err := back.RecentMatches(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 match, got %d", len(history))
	}
	match := history[0].Match

	settings, err := back.GetSettings()
	if err != nil {
		t.Fatal(err)
	}

	snapshotA := Player{Rating: match.RatingA, MatchesPlayed: match.PlayedA}
	snapshotB := Player{Rating: match.RatingB, MatchesPlayed: match.PlayedB}
	score := ValidatedScore{GamesA: match.GamesA, GamesB: match.GamesB}

	update := computeUpdate(snapshotA, snapshotB, score, settings)
	if update.ExpectedA != match.ExpectedA ||
		update.ActualA != match.ActualA ||
		update.DeltaA != match.DeltaA {
		t.Errorf(
			"stored (%f, %f, %f) is not reproducible, got (%f, %f, %f)",
			match.ExpectedA, match.ActualA, match.DeltaA,
			update.ExpectedA, update.ActualA, update.DeltaA,
		)
	}
}

func TestSubmitMatchRejections(t *testing.T) {
	back := createFixturedTestBack(t)

	playerA, playerB := testPlayers(t, back)
	timed := testFormat(t, back, "timed")
	set6 := testFormat(t, back, "set6")

	cases := []struct {
		name           string
		playerBID      util.UUIDAsBlob
		formatID       util.UUIDAsBlob
		gamesA, gamesB int
		wantCode       string
	}{
		{"same player", playerA.ID, timed.ID, 6, 2, RuleSamePlayer},
		{"empty match", playerB.ID, timed.ID, 0, 0, RuleEmptyMatch},
		{"too short", playerB.ID, timed.ID, 2, 1, RuleIneligibleMatch},
		{"bad set margin", playerB.ID, set6.ID, 6, 5, RuleInvalidScoreline},
	}

	for _, v := range cases {
		_, err := back.SubmitMatch(playerA.ID, v.playerBID, v.formatID, v.gamesA, v.gamesB)

		var rule RuleError
		if !errors.As(err, &rule) {
			t.Errorf("%s: expected a RuleError, got %v", v.name, err)
			continue
		}
		if rule.Code != v.wantCode {
			t.Errorf("%s: expected code %s, got %s", v.name, v.wantCode, rule.Code)
		}
	}

	// None of the rejections may have touched anything.
	playerA, err := back.GetPlayer(playerA.ID)
	if err != nil {
		t.Fatal(err)
	}
	if playerA.MatchesPlayed != 0 || playerA.Rating != DefaultRating {
		t.Errorf("a rejected match mutated player A: %+v", playerA)
	}

	history, err := back.RecentMatches(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Errorf("a rejected match was recorded, got %d rows", len(history))
	}
}

func TestSubmitMatchUnknownIDs(t *testing.T) {
	back := createFixturedTestBack(t)

	playerA, playerB := testPlayers(t, back)
	format := testFormat(t, back, "timed")

	unknown := NewPlayer("never inserted")

	if _, err := back.SubmitMatch(unknown.ID, playerB.ID, format.ID, 6, 2); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for an unknown player, got %v", err)
	}

	if _, err := back.SubmitMatch(playerA.ID, playerB.ID, unknown.ID, 6, 2); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for an unknown format, got %v", err)
	}
}

func TestLeaderboardExcludesInactivePlayers(t *testing.T) {
	back := createFixturedTestBack(t)

	playerA, _ := testPlayers(t, back)
	if err := back.SetPlayerActive(playerA.ID, false); err != nil {
		t.Fatal(err)
	}

	entries, err := back.Leaderboard(500)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range entries {
		if v.PlayerID == playerA.ID {
			t.Fatalf("deactivated player %s is still on the leaderboard", v.Name)
		}
	}

	// Deactivation must not be a deletion.
	if _, err := back.GetPlayer(playerA.ID); err != nil {
		t.Errorf("deactivated player is gone: %s", err)
	}
}

func TestPatchSettings(t *testing.T) {
	back := createFixturedTestBack(t)

	settings, err := back.PatchSettings([]byte(`{"BaseK": 1.2}`))
	if err != nil {
		t.Fatal(err)
	}

	assertFloat(t, "BaseK", 1.2, settings.BaseK)
	assertFloat(t, "D", 2.0, settings.D)
	if settings.RampMatches != 10 || settings.MinGames != 6 {
		t.Errorf("patch touched unrelated settings: %+v", settings)
	}

	if _, err := back.PatchSettings([]byte(`{"D": -3}`)); err == nil {
		t.Error("expected a rejection for a non-positive spread")
	}

	settings, err = back.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	assertFloat(t, "D after rejected patch", 2.0, settings.D)
}

func testPlayers(t *testing.T, back *Back) (Player, Player) {
	t.Helper()

	playerA, err := back.GetPlayerByName("Player 001")
	if err != nil {
		t.Fatal(err)
	}

	playerB, err := back.GetPlayerByName("Player 002")
	if err != nil {
		t.Fatal(err)
	}

	return playerA, playerB
}

func testFormat(t *testing.T, back *Back, shortCode string) MatchFormat {
	t.Helper()

	formats, err := back.ListFormats()
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range formats {
		if v.ShortCode == shortCode {
			return v
		}
	}

	t.Fatalf("no format with shortcode %s", shortCode)
	return MatchFormat{}
}

func createFixturedTestBack(t *testing.T) *Back {
	f, err := ioutil.TempFile("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	path := f.Name()
	f.Close()
	t.Cleanup(func() {
		os.Remove(path)
	})

	migrator, err := migrate.New(
		"file://../../resources/migrations",
		"sqlite3://"+path,
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatal(err)
	}
	migrator.Close()

	back, err := New("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}

	if err := back.LoadFixtures(); err != nil {
		t.Fatal(err)
	}

	return back
}
