package back

import (
	"matchplay/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

type FormatKind int

const ( // this is stored in DB, don't change values
	// FormatKindTimed is a match cut off by a clock, the loser's game count
	// is whatever the clock allowed.
	FormatKindTimed FormatKind = 0
	// FormatKindOneSet is a single set to TargetGames, won by WinBy.
	FormatKindOneSet FormatKind = 1
)

// A MatchFormat is configuration: created and edited administratively,
// immutable during normal play.
type MatchFormat struct {
	ID        util.UUIDAsBlob
	CreatedAt util.TimeAsTimestamp
	Name      string
	ShortCode string
	Kind      FormatKind

	// TargetGames is only meaningful for FormatKindOneSet.
	TargetGames null.Int
	WinBy       int
}

func NewTimedFormat(name, shortCode string) MatchFormat {
	return MatchFormat{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		ShortCode: shortCode,
		Kind:      FormatKindTimed,
		WinBy:     1,
	}
}

func NewOneSetFormat(name, shortCode string, targetGames, winBy int) MatchFormat {
	return MatchFormat{
		ID:          util.NewUUIDAsBlob(),
		CreatedAt:   util.TimeAsTimestamp(time.Now()),
		Name:        name,
		ShortCode:   shortCode,
		Kind:        FormatKindOneSet,
		TargetGames: null.IntFrom(int64(targetGames)),
		WinBy:       winBy,
	}
}

func (f *MatchFormat) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("MatchFormat").SetMap(squirrel.Eq{
		"ID":          f.ID,
		"CreatedAt":   f.CreatedAt,
		"Name":        f.Name,
		"ShortCode":   f.ShortCode,
		"Kind":        f.Kind,
		"TargetGames": f.TargetGames,
		"WinBy":       f.WinBy,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getFormatByID(tx *sqlx.Tx, id util.UUIDAsBlob) (MatchFormat, error) {
	var ret MatchFormat
	query := `SELECT * FROM MatchFormat WHERE MatchFormat.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return MatchFormat{}, err
	}

	return ret, nil
}

func getFormatByShortCode(tx *sqlx.Tx, shortCode string) (MatchFormat, error) {
	var ret MatchFormat
	query := `SELECT * FROM MatchFormat WHERE MatchFormat.ShortCode = ? LIMIT 1`
	if err := tx.Get(&ret, query, shortCode); err != nil {
		return MatchFormat{}, err
	}

	return ret, nil
}

func (b *Back) ListFormats() (formats []MatchFormat, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(&formats, `SELECT * FROM MatchFormat ORDER BY CreatedAt ASC, Name ASC`)
	}); err != nil {
		return nil, err
	}

	return formats, nil
}

func (b *Back) CreateFormat(format MatchFormat) error {
	if format.Kind == FormatKindOneSet &&
		(!format.TargetGames.Valid || format.TargetGames.Int64 <= 0) {
		return util.ErrPublic("a set format needs a positive game target")
	}

	if format.WinBy <= 0 {
		return util.ErrPublic("the win-by margin must be positive")
	}

	return b.transaction(format.insert)
}
