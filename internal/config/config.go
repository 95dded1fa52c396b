package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type Config struct {
	// HTTPListen is the host:port the JSON API binds to.
	HTTPListen string

	// DatabasePath is the path to the SQLite database file.
	DatabasePath string

	// AdminToken gates the settings admin endpoints, no token means no
	// remote settings editing.
	AdminToken string

	// DiscordToken enables the Discord frontend when set.
	DiscordToken string

	// DiscordAdminUserID is who gets pinged on internal bot errors.
	DiscordAdminUserID string
}

func NewFromUserConfigDir() (*Config, error) {
	c := &Config{
		HTTPListen:   "127.0.0.1:3001",
		DatabasePath: "./matchplay.db",
	}
	if err := c.ReloadFromUserConfigDir(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) expandFromEnv() {
	vars := []struct {
		src string
		dst *string
	}{
		{"MATCHPLAY_LISTEN", &c.HTTPListen},
		{"MATCHPLAY_DB", &c.DatabasePath},
		{"MATCHPLAY_ADMIN_TOKEN", &c.AdminToken},
		{"MATCHPLAY_DISCORD_TOKEN", &c.DiscordToken},
		{"MATCHPLAY_DISCORD_ADMIN_USER", &c.DiscordAdminUserID},
	}

	for _, v := range vars {
		if str := os.Getenv(v.src); str != "" {
			*v.dst = str
		}
	}
}

func (c *Config) ReloadFromUserConfigDir() error {
	defer c.expandFromEnv()

	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: reading conf from %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(c)
}

func getOrCreateUserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(configDir, "matchplay")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.json"), nil
}

func (c *Config) Write() error {
	path, err := getOrCreateUserConfigPath()
	if err != nil {
		return err
	}
	log.Printf("debug: writing conf to %s", path)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o700)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(c); err != nil {
		if err2 := f.Close(); err2 != nil {
			return fmt.Errorf("unable to close file (%s) after error: %w", err2, err)
		}

		return err
	}

	return f.Close()
}
