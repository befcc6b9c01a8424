package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/ncastellanos/casita/internal/api"
	"github.com/ncastellanos/casita/internal/auth"
	"github.com/ncastellanos/casita/internal/config"
	"github.com/ncastellanos/casita/internal/db"
	"github.com/ncastellanos/casita/internal/events"
	"github.com/ncastellanos/casita/internal/session"
	"github.com/ncastellanos/casita/internal/store"
)

func main() {
	log.Printf("Starting casita server...")

	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		log.Fatalf("Could not load config: %v", cfgErr)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Could not start server: %v", err)
	}
}

// Wires the collaborators and runs the HTTP server until interrupted.
func run(cfg *config.Config) error {
	dbClient := db.NewClient(cfg)
	authClient := auth.NewClient(cfg)
	eventServer := events.NewServer()

	stores := func(token string) store.Store {
		return store.NewPostgrest(dbClient.UserClient(token))
	}

	sessions := session.NewManager(authClient, session.StoreFactory(stores))
	defer sessions.Close()

	// Bridge session changes into the WebSocket fan-out.
	sessionEvents, unsubscribe := sessions.Subscribe()
	defer unsubscribe()
	go func() {
		for evt := range sessionEvents {
			eventServer.Publish(evt)
		}
	}()

	mux := http.NewServeMux()
	api.NewServer(stores, sessions, authClient, eventServer).Register(mux)

	addr := fmt.Sprintf(":%s", cfg.Port)
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("Server listening on http://localhost%s", addr)

	s := &http.Server{
		Handler:      mux,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)

	select {
	case err := <-errc:
		log.Printf("Server error. Failed to serve: %v", err)
	case sig := <-sigs:
		log.Printf("Received signal %v. Shutting down server...", sig)
	}

	// Stop accepting new connections and give in-flight requests time to
	// finish before forcing the close.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	return s.Shutdown(ctx)
}
