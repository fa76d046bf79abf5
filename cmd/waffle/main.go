package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/raksonibs/waffle/internal/adapters/driven/browser"
	"github.com/raksonibs/waffle/internal/adapters/driven/config/file"
	"github.com/raksonibs/waffle/internal/adapters/driven/storage/sqlite"
	"github.com/raksonibs/waffle/internal/adapters/driving/cli"
	"github.com/raksonibs/waffle/internal/connectors/office"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// Optional .env for local development; WAFFLE_* variables override
	// the config file either way.
	_ = godotenv.Load()

	appCfg, err := file.Load("")
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	file.ApplyEnv(appCfg)

	cfg := file.Merge(office.DefaultConfig(), appCfg)

	store, err := sqlite.NewStore("")
	if err != nil {
		log.Printf("failed to open account store: %v", err)
		return 1
	}
	defer store.Close()

	surfaces := browser.NewOpener(appCfg.Browser.ExecPath)
	service := office.NewService(cfg, surfaces, store)

	cli.SetServices(&cli.Services{Calendar: service})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
