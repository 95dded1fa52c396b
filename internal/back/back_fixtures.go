package back

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures seeds everything a fresh install needs: the Settings
// singleton, the default formats, and a placeholder player pool when there
// are no players at all. It is idempotent, existing rows are left alone.
func (b *Back) LoadFixtures() error {
	return b.transaction(func(tx *sqlx.Tx) error {
		if err := ensureSettings(tx); err != nil {
			return err
		}

		if err := ensureDefaultFormats(tx); err != nil {
			return err
		}

		return ensurePlayerPool(tx)
	})
}

func ensureSettings(tx *sqlx.Tx) error {
	if _, err := getSettings(tx); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	log.Print("info: creating default Settings")
	settings := DefaultSettings()
	return settings.insert(tx)
}

func ensureDefaultFormats(tx *sqlx.Tx) error {
	formats := []MatchFormat{
		NewTimedFormat("Timed (final games only)", "timed"),
		NewOneSetFormat("1 set to 4 (win by 2)", "set4", 4, 2),
		NewOneSetFormat("1 set to 6 (win by 2)", "set6", 6, 2),
	}

	for _, v := range formats {
		if _, err := getFormatByShortCode(tx, v.ShortCode); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		log.Printf("info: creating format %s", v.ShortCode)
		v := v
		if err := v.insert(tx); err != nil {
			return err
		}
	}

	return nil
}

func ensurePlayerPool(tx *sqlx.Tx) error {
	var count int
	if err := tx.Get(&count, `SELECT COUNT(*) FROM Player`); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Print("info: creating placeholder player pool")
	for i := 1; i <= 150; i++ {
		player := NewPlayer(fmt.Sprintf("Player %03d", i))
		if err := player.insert(tx); err != nil {
			return err
		}
	}

	return nil
}
