package main

import (
	"log"
	"os"

	"disiplinku_backend/internals/configs"
	database "disiplinku_backend/internals/databases"
	"disiplinku_backend/internals/helpers/dbtime"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()
	dbtime.SetLocation(cfg.Location())

	database.ConnectDB(cfg)

	cli := newCommandLine(database.DB, cfg, os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err == errHelp {
			os.Exit(2)
		}
		log.Fatalf("❌ %v", err)
	}
}
