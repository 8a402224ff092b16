// Command rtspd wires the session manager, method handler, TCP
// acceptor, UDP transport, and session reaper into a running RTSP
// server. It is deliberately thin: argument parsing, frame sourcing,
// and logging backend configuration are all external to the core
// packages this command assembles.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/streamforge/rtspd/internal/rtpout"
	"github.com/streamforge/rtspd/internal/server"
	"github.com/streamforge/rtspd/internal/session"
	"github.com/streamforge/rtspd/pkg/rtpmedia"
)

const defaultBindAddr = "0.0.0.0:8554"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	bindAddr := defaultBindAddr
	if v := os.Getenv("RTSPD_BIND_ADDR"); v != "" {
		bindAddr = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mgr := session.NewManager()
	packetizer := rtpmedia.NewH264Packetizer(96)

	reaper := session.NewReaper(mgr, 10*time.Second)
	go reaper.Run(ctx)

	udp, err := rtpout.Bind()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to bind UDP transport")
	}
	defer udp.Close()

	handler := server.NewHandler(mgr, packetizer)
	srv := server.New(handler)

	if err := srv.Start(ctx, bindAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start RTSP server")
	}

	log.Info().Str("addr", bindAddr).Msg("rtspd ready")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	srv.Stop()
}
