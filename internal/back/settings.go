package back

import (
	"encoding/json"
	"fmt"
	"matchplay/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/jmoiron/sqlx"
)

// settingsID is the primary key of the one and only Settings row, the schema
// has a CHECK enforcing it.
const settingsID = 1

// Settings is the global tuning of the rating engine. It is read once per
// submission and threaded into the engine as a plain value, never as ambient
// state.
type Settings struct {
	ID        int64                `json:"-"`
	UpdatedAt util.TimeAsTimestamp `json:"-"`

	// BaseK is the base learning rate coefficient.
	BaseK float64
	// D is the logistic spread: how strongly a rating gap translates into an
	// expected game share.
	D float64
	// RampMatches is how many early matches it takes for a newcomer's
	// K multiplier to settle down to 1.0.
	RampMatches int
	// MinGames is the minimum total games for a match to be rating-eligible.
	MinGames int
}

func DefaultSettings() Settings {
	return Settings{
		ID:        settingsID,
		UpdatedAt: util.TimeAsTimestamp(time.Now()),

		BaseK:       0.8,
		D:           2.0,
		RampMatches: 10,
		MinGames:    6,
	}
}

func (s *Settings) validate() error {
	if s.BaseK <= 0 {
		return util.ErrPublic("baseK must be positive")
	}

	if s.D <= 0 {
		return util.ErrPublic("d must be positive")
	}

	if s.RampMatches < 0 {
		return util.ErrPublic("rampMatches can't be negative")
	}

	if s.MinGames < 1 {
		return util.ErrPublic("minGames must be at least 1")
	}

	return nil
}

func (s *Settings) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Settings").SetMap(squirrel.Eq{
		"ID":          s.ID,
		"UpdatedAt":   s.UpdatedAt,
		"BaseK":       s.BaseK,
		"D":           s.D,
		"RampMatches": s.RampMatches,
		"MinGames":    s.MinGames,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (s *Settings) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Settings").SetMap(squirrel.Eq{
		"UpdatedAt":   util.TimeAsTimestamp(time.Now()),
		"BaseK":       s.BaseK,
		"D":           s.D,
		"RampMatches": s.RampMatches,
		"MinGames":    s.MinGames,
	}).Where("Settings.ID = ?", settingsID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getSettings(tx *sqlx.Tx) (Settings, error) {
	var ret Settings
	query := `SELECT * FROM Settings WHERE Settings.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, settingsID); err != nil {
		return Settings{}, err
	}

	return ret, nil
}

func (b *Back) GetSettings() (settings Settings, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		settings, err = getSettings(tx)
		return err
	}); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// PatchSettings applies a JSON merge patch (RFC 7396) to the tuning
// singleton, eg. `{"BaseK": 1.0}` leaves every other knob untouched.
func (b *Back) PatchSettings(patch []byte) (settings Settings, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		cur, err := getSettings(tx)
		if err != nil {
			return err
		}

		doc, err := json.Marshal(cur)
		if err != nil {
			return err
		}

		merged, err := jsonpatch.MergePatch(doc, patch)
		if err != nil {
			return util.ErrPublic(fmt.Sprintf("invalid merge patch: %s", err))
		}

		settings = cur
		if err := json.Unmarshal(merged, &settings); err != nil {
			return util.ErrPublic(fmt.Sprintf("invalid settings document: %s", err))
		}

		if err := settings.validate(); err != nil {
			return err
		}

		return settings.update(tx)
	}); err != nil {
		return Settings{}, err
	}

	return settings, nil
}
