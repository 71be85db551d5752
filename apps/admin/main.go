package main

import (
	"log"
	"os"

	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/auth"
	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
	logsvc "github.com/DrumilPatell/sms-system/services/logger"
	"github.com/DrumilPatell/sms-system/storage/sessionfile"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags),
		conf,
	)
	logger.Enable(!conf.Debug)

	store := session.NewStore(sessionfile.NewRepository(conf), logger)
	backend := backendsvc.NewClient(conf, store, logger)

	cli := &commandLine{
		store:   store,
		backend: backend,
		auth:    auth.NewHandler(backend, store, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Fatal(err)
		}
		os.Exit(2)
	}
}
