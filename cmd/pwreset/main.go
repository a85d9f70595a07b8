package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"pwreset/internal/app"
	"pwreset/internal/app/deps"
	"pwreset/internal/app/services"
	"syscall"
	"time"

	c "pwreset/internal/core/domain/common"
	dl "pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/user"
	createuser "pwreset/internal/core/services/create_user"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	seedUser(context.Background(), deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

// seedUser creates the configured development account once.
func seedUser(ctx context.Context, deps *deps.Deps, s *services.Services) {
	if deps.Config.SeedUserEmail == "" {
		return
	}
	_, err := s.CreateUser.Run(ctx, createuser.Input{
		Email:    c.NewEmail(deps.Config.SeedUserEmail),
		Password: user.RawPassword(deps.Config.SeedUserPassword),
	})
	if err != nil && !errors.Is(err, user.ErrEmailAlreadyExists) {
		panic(err)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
		dl.Entry("storage", deps.Config.Storage),
		dl.Entry("mailer", deps.Config.Mailer),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
