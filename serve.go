package main

import (
	"log"
	"matchplay/internal/back"
	"matchplay/internal/bot"
	"matchplay/internal/config"
	"matchplay/internal/web"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func serve() error {
	conf, err := config.NewFromUserConfigDir()
	if err != nil {
		return err
	}

	b, err := back.New("sqlite3", conf.DatabasePath)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup
	go web.NewServer(b, conf.HTTPListen, conf.AdminToken).Serve(&wg, done)

	if conf.DiscordToken != "" {
		dg, err := bot.New(b, conf.DiscordToken, conf.DiscordAdminUserID)
		if err != nil {
			return err
		}
		go dg.Serve(&wg, done)
	} else {
		log.Print("info: no Discord token configured, not starting the bot")
	}

	sig := <-signaled
	log.Printf("received signal %d", sig)

	close(done)
	wg.Wait()

	log.Print("shutdown complete")

	return nil
}
