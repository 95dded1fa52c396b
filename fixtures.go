package main

import (
	"matchplay/internal/back"
	"matchplay/internal/config"
)

func loadFixtures() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.DatabasePath)
	if err != nil {
		return err
	}

	return b.LoadFixtures()
}
