package main

import (
	"flag"
	"log"
	"os"

	"github.com/hydrochess/search/internal/config"
	"github.com/hydrochess/search/internal/engine"
	"github.com/hydrochess/search/internal/protocol"
	"github.com/hydrochess/search/internal/rules"
)

var configPath = flag.String("config", "", "path to a TOML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	re := rules.NewEngine()
	eng := engine.NewEngine(re, cfg)

	driver := protocol.New(eng, re, os.Stdout)
	driver.Run(os.Stdin)
}
