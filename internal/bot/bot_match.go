package bot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// defaultFormatShortCode is used when !match is sent without a format.
const defaultFormatShortCode = "set6"

func parseScore(str string) (gamesA, gamesB int, _ error) {
	parts := strings.SplitN(str, "-", 2)
	if len(parts) != 2 {
		return 0, 0, errPublic("the score must look like `6-2`")
	}

	gamesA, errA := strconv.Atoi(parts[0])
	gamesB, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return 0, 0, errPublic("the score must look like `6-2`")
	}

	return gamesA, gamesB, nil
}

// cmdMatch reports a match played by the author (player A) against a named
// opponent, eg. `!match Zelda 6-2 set6`.
func (bot *Bot) cmdMatch(m *discordgo.Message, args []string, w io.Writer) error {
	if len(args) < 2 {
		return errPublic("usage: `!match OPPONENT SCORE [FORMAT]`, eg. `!match Zelda 6-2 set6`")
	}

	// The last argument is either the format shortcode or, when omitted,
	// the score itself. Opponent names can contain spaces.
	shortCode := defaultFormatShortCode
	scoreIdx := len(args) - 1
	if _, _, err := parseScore(args[scoreIdx]); err != nil && len(args) >= 3 {
		shortCode = args[len(args)-1]
		scoreIdx = len(args) - 2
	}

	gamesA, gamesB, err := parseScore(args[scoreIdx])
	if err != nil {
		return err
	}

	opponent := strings.Join(args[:scoreIdx], " ")
	if opponent == "" {
		return errPublic("usage: `!match OPPONENT SCORE [FORMAT]`")
	}

	result, err := bot.back.SubmitDiscordMatch(m.Author.ID, opponent, shortCode, gamesA, gamesB)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		w,
		"Match recorded: %d-%d against %s.\n"+
			"Expected game share %.1f%%, actual %.1f%%, your rating moved by %+.3f to %.3f.",
		gamesA, gamesB, opponent,
		result.ExpectedA*100, result.ActualA*100,
		result.DeltaA, result.NewRatingA,
	)

	return nil
}

func (bot *Bot) cmdRating(m *discordgo.Message, args []string, w io.Writer) error {
	if len(args) == 0 {
		p, err := bot.back.GetPlayerByDiscordID(m.Author.ID)
		if err != nil {
			return errPublic("you are not registered yet, use `!register`")
		}

		fmt.Fprintf(w, "`%s` is rated %.3f over %d matches.", p.Name, p.Rating, p.MatchesPlayed)
		return nil
	}

	name := strings.Join(args, " ")
	p, err := bot.back.GetPlayerByName(name)
	if err != nil {
		return errPublic(fmt.Sprintf("there is no player named `%s`", name))
	}

	fmt.Fprintf(w, "`%s` is rated %.3f over %d matches.", p.Name, p.Rating, p.MatchesPlayed)
	return nil
}

func (bot *Bot) cmdLeaderboard(_ *discordgo.Message, _ []string, w io.Writer) error {
	entries, err := bot.back.Leaderboard(10)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprint(w, "There is no one on the leaderboard yet.")
		return nil
	}

	fmt.Fprint(w, "```\n")
	for k, v := range entries {
		fmt.Fprintf(w, "%2d. %-32s %7.3f (%d matches)\n", k+1, v.Name, v.Rating, v.MatchesPlayed)
	}
	fmt.Fprint(w, "```")

	return nil
}

func (bot *Bot) cmdFormats(_ *discordgo.Message, _ []string, w io.Writer) error {
	formats, err := bot.back.ListFormats()
	if err != nil {
		return err
	}

	fmt.Fprint(w, "```\n")
	for _, v := range formats {
		fmt.Fprintf(w, "%-8s %s\n", v.ShortCode, v.Name)
	}
	fmt.Fprint(w, "```")

	return nil
}
