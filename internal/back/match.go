package back

import (
	"matchplay/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// A Match is the immutable audit trail: insert-only, never updated. Besides
// the scoreline and the engine figures it snapshots both players' pre-match
// rating and match count so every stored delta can be re-derived later.
type Match struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	PlayerAID util.UUIDAsBlob
	PlayerBID util.UUIDAsBlob
	FormatID  util.UUIDAsBlob

	GamesA int
	GamesB int

	ExpectedA float64
	ActualA   float64
	DeltaA    float64

	// Pre-match snapshots.
	RatingA float64
	RatingB float64
	PlayedA int
	PlayedB int
}

func NewMatch(a, b Player, format MatchFormat, score ValidatedScore, update RatingUpdate) Match {
	return Match{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		PlayerAID: a.ID,
		PlayerBID: b.ID,
		FormatID:  format.ID,

		GamesA: score.GamesA,
		GamesB: score.GamesB,

		ExpectedA: update.ExpectedA,
		ActualA:   update.ActualA,
		DeltaA:    update.DeltaA,

		RatingA: a.Rating,
		RatingB: b.Rating,
		PlayedA: a.MatchesPlayed,
		PlayedB: b.MatchesPlayed,
	}
}

func (m *Match) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Match").SetMap(squirrel.Eq{
		"ID":        m.ID,
		"CreatedAt": m.CreatedAt,
		"PlayerAID": m.PlayerAID,
		"PlayerBID": m.PlayerBID,
		"FormatID":  m.FormatID,
		"GamesA":    m.GamesA,
		"GamesB":    m.GamesB,
		"ExpectedA": m.ExpectedA,
		"ActualA":   m.ActualA,
		"DeltaA":    m.DeltaA,
		"RatingA":   m.RatingA,
		"RatingB":   m.RatingB,
		"PlayedA":   m.PlayedA,
		"PlayedB":   m.PlayedB,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getRecentMatches(tx *sqlx.Tx, limit int) ([]Match, error) {
	matches := make([]Match, 0, limit)
	query := `SELECT * FROM Match ORDER BY CreatedAt DESC, ID DESC LIMIT ?`
	if err := tx.Select(&matches, query, limit); err != nil {
		return nil, err
	}

	return matches, nil
}
