package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/younwookim/actorsim/internal/application/bootstrap"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/stream"
)

func newMux(srv *stream.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", srv)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	dir := flag.String("replays", "replays", "Directory holding <name>.json recordings")
	configDir := flag.String("config", "cmd/game/configs", "Config directory")
	physics := flag.String("physics", bootstrap.Chipmunk, "Physics backend: kinematic or chipmunk")
	interval := flag.Duration("interval", 20*time.Millisecond, "Pause between streamed ticks, 0 streams flat out")
	flag.Parse()

	logger := log.Default()
	o := &opener{
		dir:     *dir,
		loader:  config.NewLoader(*configDir),
		physics: *physics,
		logger:  logger,
	}
	srv := stream.NewServer(stream.Config{
		Open:     o.Open,
		Param:    "replay",
		Interval: *interval,
		Logger:   logger,
	})

	httpServer := &http.Server{Addr: *addr, Handler: newMux(srv)}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Close()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown: %v", err)
		}
	}()

	logger.Printf("Streaming replays from %s on %s", *dir, *addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
