package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/natefinch/lumberjack"

	"github.com/nstehr/necro/necro-core/agent"
	"github.com/nstehr/necro/necro-core/config"
	"github.com/nstehr/necro/necro-core/ipc"
)

const banner = `
███╗   ██╗███████╗ ██████╗██████╗  ██████╗
████╗  ██║██╔════╝██╔════╝██╔══██╗██╔═══██╗
██╔██╗ ██║█████╗  ██║     ██████╔╝██║   ██║
██║╚██╗██║██╔══╝  ██║     ██╔══██╗██║   ██║
██║ ╚████║███████╗╚██████╗██║  ██║╚██████╔╝
╚═╝  ╚═══╝╚══════╝ ╚═════╝╚═╝  ╚═╝ ╚═════╝

Necrowar Turn Intelligence`

func main() {
	configPath := flag.String("config", "necro.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		// Rotated file sink alongside stdout.
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    max(1, cfg.Log.MaxSize),
			MaxBackups: max(0, cfg.Log.MaxBackups),
			MaxAge:     max(0, cfg.Log.MaxAge),
			Compress:   cfg.Log.Compress,
		})
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting necro",
		"network", cfg.Network,
		"socket", cfg.Socket,
		"miners", cfg.Policy.Miners,
		"fishers", cfg.Policy.Fishers,
		"builders", cfg.Policy.Builders,
		"attackers", cfg.Policy.Attackers,
		"explore", cfg.Policy.Explore,
	)

	if cfg.Network == "unix" {
		// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
		if err := os.RemoveAll(cfg.Socket); err != nil {
			slog.Error("failed to clean up socket", "path", cfg.Socket, "error", err)
			os.Exit(1)
		}
		defer os.Remove(cfg.Socket)
	}

	listener, err := net.Listen(cfg.Network, cfg.Socket)
	if err != nil {
		slog.Error("failed to listen", "network", cfg.Network, "address", cfg.Socket, "error", err)
		os.Exit(1)
	}
	defer listener.Close()

	slog.Info("listening", "network", cfg.Network, "address", cfg.Socket)

	opts := agent.Options{Policy: cfg.Policy, Seed: cfg.Seed}
	if cfg.Outcome.File != "" {
		rec := agent.NewOutcomeRecorder(cfg.Outcome.File, cfg.Outcome.MaxSize)
		defer rec.Close()
		opts.Outcome = rec
		slog.Info("recording outcomes", "path", cfg.Outcome.File)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, opts)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, opts agent.Options) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, opts)
	a.Register()
	c.ReadLoop()
}
