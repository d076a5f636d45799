package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Tyrowin/goboard/internal/config"
	"github.com/Tyrowin/goboard/internal/mcast"
	"github.com/Tyrowin/goboard/internal/notify"
	"github.com/Tyrowin/goboard/internal/server"
	"github.com/Tyrowin/goboard/internal/state"
	"github.com/Tyrowin/goboard/internal/store"
)

func runServe() error {
	if err := config.Initialize(cfgFile); err != nil {
		return err
	}
	setupLogging()

	alloc, err := mcast.NewAllocatorAt(config.GetString("multicast-base"), config.GetInt("multicast-port"))
	if err != nil {
		return err
	}

	st := store.New(alloc, mcast.UDPSender{})

	stateDir := config.GetString("state-dir")
	if err := state.Restore(stateDir, st); err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	hub := notify.NewHub()
	hub.UsersSource = st.UsersSnapshot
	hub.ProjectsSource = st.ProjectsSnapshot
	st.OnUsersChanged = func() { hub.PublishUsers(st.UsersSnapshot()) }
	st.OnProjectsChanged = func() { hub.PublishProjects(st.ProjectsSnapshot()) }
	go hub.Run()

	notify.SetAllowedOrigins(config.GetStringSlice("allowed-origins"))
	httpServer := notify.CreateServer(config.GetString("events-addr"), notify.SetupRoutes(hub, st))
	go func() {
		log.Printf("Events server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Events server error: %v", err)
		}
	}()

	srv := server.New(server.Config{
		ListenAddr:   config.GetString("listen-addr"),
		Workers:      config.GetInt("workers"),
		RateBurst:    config.GetInt("rate-burst"),
		RateInterval: config.GetDuration("rate-interval"),
	}, st)
	if err := srv.Start(); err != nil {
		return err
	}

	// Block until interrupted, then save state and drain everything.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received %s, shutting down", sig)

	timeout := config.GetDuration("shutdown-timeout")
	if err := srv.Shutdown(timeout); err != nil {
		log.Printf("Board server shutdown: %v", err)
	}
	if err := notify.ShutdownServer(httpServer, timeout); err != nil {
		log.Printf("Events server shutdown: %v", err)
	}
	if err := hub.Shutdown(timeout); err != nil {
		log.Printf("Hub shutdown: %v", err)
	}

	if err := state.Save(stateDir, st.PersistedUsers(), st.ProjectsSnapshot()); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	log.Printf("State saved to %s", stateDir)
	return nil
}

// setupLogging routes the standard logger to a rotating file when one is
// configured; otherwise logs stay on stderr.
func setupLogging() {
	logFile := config.GetString("log-file")
	if logFile == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    config.GetInt("log-max-size"),
		MaxBackups: config.GetInt("log-max-backups"),
		MaxAge:     config.GetInt("log-max-age"),
		Compress:   true,
	})
}
