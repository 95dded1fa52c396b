package back

import (
	"matchplay/internal/util"

	"github.com/jmoiron/sqlx"
)

type LeaderboardEntry struct {
	PlayerID      util.UUIDAsBlob
	Name          string
	Rating        float64
	MatchesPlayed int
}

// Leaderboard returns the top active players by current rating, ties broken
// by name. Inactive players keep their rating but are not shown.
func (b *Back) Leaderboard(limit int) (entries []LeaderboardEntry, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		query := `
            SELECT ID AS PlayerID, Name, Rating, MatchesPlayed FROM Player
            WHERE IsActive = 1
            ORDER BY Rating DESC, Name ASC LIMIT ?`
		return tx.Select(&entries, query, limit)
	}); err != nil {
		return nil, err
	}

	return entries, nil
}

// A MatchHistoryEntry is a Match hydrated with the names the history table
// displays.
type MatchHistoryEntry struct {
	Match
	PlayerAName string
	PlayerBName string
	FormatName  string
}

func (b *Back) RecentMatches(limit int) (entries []MatchHistoryEntry, _ error) {
	if err := b.transaction(func(tx *sqlx.Tx) error {
		matches, err := getRecentMatches(tx, limit)
		if err != nil {
			return err
		}

		ids := make([]util.UUIDAsBlob, 0, len(matches)*2)
		for k := range matches {
			ids = append(ids, matches[k].PlayerAID, matches[k].PlayerBID)
		}

		players, err := getPlayersByIDs(tx, ids)
		if err != nil {
			return err
		}

		formats, err := getFormatsByMatches(tx, matches)
		if err != nil {
			return err
		}

		entries = make([]MatchHistoryEntry, 0, len(matches))
		for k := range matches {
			entries = append(entries, MatchHistoryEntry{
				Match:       matches[k],
				PlayerAName: players[matches[k].PlayerAID].Name,
				PlayerBName: players[matches[k].PlayerBID].Name,
				FormatName:  formats[matches[k].FormatID].Name,
			})
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return entries, nil
}

func getFormatsByMatches(tx *sqlx.Tx, matches []Match) (map[util.UUIDAsBlob]MatchFormat, error) {
	ids := make([]util.UUIDAsBlob, 0, len(matches))
	for k := range matches {
		ids = append(ids, matches[k].FormatID)
	}

	if len(ids) == 0 {
		return map[util.UUIDAsBlob]MatchFormat{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM MatchFormat WHERE ID IN(?)`, ids)
	if err != nil {
		return nil, err
	}
	query = tx.Rebind(query)

	formats := make([]MatchFormat, 0, len(ids))
	if err := tx.Select(&formats, query, args...); err != nil {
		return nil, err
	}

	ret := make(map[util.UUIDAsBlob]MatchFormat, len(formats))
	for k := range formats {
		ret[formats[k].ID] = formats[k]
	}

	return ret, nil
}
