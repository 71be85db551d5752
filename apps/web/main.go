package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoweb "github.com/DrumilPatell/sms-system/apps/web/echo"
	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
	logsvc "github.com/DrumilPatell/sms-system/services/logger"
	"github.com/DrumilPatell/sms-system/storage/sessionfile"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	store := session.NewStore(sessionfile.NewRepository(conf), logger)
	backend := backendsvc.NewClient(conf, store, logger)

	// =========================================================================
	// Start Web Console

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoweb.NewServer(echoweb.Deps{
		Conf:    conf,
		Logger:  logger,
		Store:   store,
		Backend: backend,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
