package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Version holds the build-time version string.
var Version = "unknown" // nolint:gochecknoglobals

func main() {
	flag.Parse()

	switch flag.Arg(0) { // nolint, TODO
	case "version":
		fmt.Fprintf(os.Stdout, "Matchplay %s\n", Version)
	case "serve":
		if err := serve(); err != nil {
			log.Fatal(err)
		}
	case "fixtures":
		if err := loadFixtures(); err != nil {
			log.Fatal(err)
		}
	case "migrate":
		if err := runMigrations(); err != nil {
			log.Fatal(err)
		}
	case "help":
		fmt.Fprint(os.Stdout, help())
		return
	default:
		fmt.Fprint(os.Stderr, help())
		os.Exit(1)
	}
}

func help() string {
	return fmt.Sprintf(`
Matchplay records in-house singles matches and keeps an UTR-style skill
rating per player.

Usage: %[1]s COMMAND [ARGS…]

COMMANDS
    fixtures     ensure the default settings, formats, and player pool exist
    help         display this help
    migrate      bring the database schema up to date
    serve        run the HTTP API and (if configured) the Discord bot
    version      display the current version
`,
		os.Args[0],
	)
}
