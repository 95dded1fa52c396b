package back

import (
	"matchplay/internal/util"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v4"
)

// DefaultRating is where every new or unproven player starts.
const DefaultRating = 5.0

// A Player is a competitor in the pool. Players are never deleted, only
// deactivated, as every historical Match keeps referencing them.
type Player struct {
	ID            util.UUIDAsBlob
	CreatedAt     util.TimeAsTimestamp
	Name          string
	Rating        float64
	MatchesPlayed int
	IsActive      bool
	DiscordID     null.String
}

func NewPlayer(name string) Player {
	return Player{
		ID:        util.NewUUIDAsBlob(),
		CreatedAt: util.TimeAsTimestamp(time.Now()),
		Name:      name,
		Rating:    DefaultRating,
		IsActive:  true,
	}
}

func (p *Player) insert(tx *sqlx.Tx) error {
	query, args, err := squirrel.Insert("Player").SetMap(squirrel.Eq{
		"ID":            p.ID,
		"CreatedAt":     p.CreatedAt,
		"Name":          p.Name,
		"Rating":        p.Rating,
		"MatchesPlayed": p.MatchesPlayed,
		"IsActive":      p.IsActive,
		"DiscordID":     p.DiscordID,
	}).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func (p *Player) update(tx *sqlx.Tx) error {
	query, args, err := squirrel.Update("Player").SetMap(squirrel.Eq{
		"Name":          p.Name,
		"Rating":        p.Rating,
		"MatchesPlayed": p.MatchesPlayed,
		"IsActive":      p.IsActive,
		"DiscordID":     p.DiscordID,
	}).Where("Player.ID = ?", p.ID).ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return err
	}

	return nil
}

func getPlayerByID(tx *sqlx.Tx, id util.UUIDAsBlob) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.ID = ? LIMIT 1`
	if err := tx.Get(&ret, query, id); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByName(tx *sqlx.Tx, name string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.Name = ? LIMIT 1`
	if err := tx.Get(&ret, query, name); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func getPlayerByDiscordID(tx *sqlx.Tx, discordID string) (Player, error) {
	var ret Player
	query := `SELECT * FROM Player WHERE Player.DiscordID = ? LIMIT 1`
	if err := tx.Get(&ret, query, discordID); err != nil {
		return Player{}, err
	}

	return ret, nil
}

func (b *Back) GetPlayer(id util.UUIDAsBlob) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByID(tx, id)
		return err
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) GetPlayerByName(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByName(tx, name)
		return err
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) GetPlayerByDiscordID(discordID string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) (err error) {
		player, err = getPlayerByDiscordID(tx, discordID)
		return err
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

// ListPlayers returns the active player pool sorted the way the pick list
// shows it, best rating first.
func (b *Back) ListPlayers() (players []Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		return tx.Select(
			&players,
			`SELECT * FROM Player WHERE IsActive = 1 ORDER BY Rating DESC, Name ASC`,
		)
	}); err != nil {
		return nil, err
	}

	return players, nil
}

func validatePlayerName(tx *sqlx.Tx, name string) error {
	if len(name) < 3 || len(name) > 32 {
		return util.ErrPublic("your name must be between 3 and 32 characters")
	}

	if _, err := getPlayerByName(tx, name); err == nil {
		return util.ErrPublic("this name is taken already")
	}

	return nil
}

func (b *Back) RegisterPlayer(name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) RegisterDiscordPlayer(discordID, name string) (player Player, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		if _, err := getPlayerByDiscordID(tx, discordID); err == nil {
			return util.ErrPublic("you are already registered")
		}

		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player = NewPlayer(name)
		player.DiscordID = null.StringFrom(discordID)
		return player.insert(tx)
	}); err != nil {
		return Player{}, err
	}

	return player, nil
}

func (b *Back) UpdateDiscordPlayerName(discordID string, name string) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByDiscordID(tx, discordID)
		if err != nil {
			return err
		}

		if player.Name == name {
			return util.ErrPublic("that's your name already")
		}

		if err := validatePlayerName(tx, name); err != nil {
			return err
		}

		player.Name = name
		return player.update(tx)
	})
}

// SetPlayerActive shows or hides a player from the leaderboard and pick
// lists. There is no deletion, history must stay explainable.
func (b *Back) SetPlayerActive(id util.UUIDAsBlob, active bool) error {
	return b.transaction(func(tx *sqlx.Tx) error {
		player, err := getPlayerByID(tx, id)
		if err != nil {
			return err
		}

		player.IsActive = active
		return player.update(tx)
	})
}

func getPlayersByIDs(tx *sqlx.Tx, ids []util.UUIDAsBlob) (map[util.UUIDAsBlob]Player, error) {
	if len(ids) == 0 {
		return map[util.UUIDAsBlob]Player{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM Player WHERE ID IN(?)`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	players := make([]Player, 0, len(ids))
	if err := tx.Select(&players, query, args...); err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]Player, len(players))
	for k := range players {
		ret[players[k].ID] = players[k]
	}

	return ret, nil
}
