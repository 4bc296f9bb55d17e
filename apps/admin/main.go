package main

import (
	"log"
	"os"

	"github.com/trezcool/academia/core"
	academicsvc "github.com/trezcool/academia/services/academic"
	logsvc "github.com/trezcool/academia/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// start CLI
	cli := newCommandLine(conf, logger, academicsvc.NewClient(conf, logger), os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
