package bot

import (
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (bot *Bot) cmdRegister(m *discordgo.Message, args []string, w io.Writer) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		name = m.Author.Username
	}

	player, err := bot.back.RegisterDiscordPlayer(m.Author.ID, name)
	if err != nil {
		return err
	}

	fmt.Fprintf(
		w,
		"You are registered as `%s` with a starting rating of %.1f, report your first match with `!match`.",
		player.Name, player.Rating,
	)

	return nil
}

func (bot *Bot) cmdRename(m *discordgo.Message, args []string, w io.Writer) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errPublic("your name can't be empty")
	}

	if err := bot.back.UpdateDiscordPlayerName(m.Author.ID, name); err != nil {
		return err
	}

	fmt.Fprintf(w, "You are now known as `%s`.", name)

	return nil
}
