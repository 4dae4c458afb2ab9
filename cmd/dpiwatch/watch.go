package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/dpiwatch/internal/config"
	"github.com/1broseidon/dpiwatch/internal/ipc"
	"github.com/1broseidon/dpiwatch/internal/logging"
	"github.com/1broseidon/dpiwatch/internal/platform"
	"github.com/1broseidon/dpiwatch/internal/session"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	title := fs.String("title", "", "Watch the first window whose title contains this text (default: active window)")
	method := fs.String("method", "", "Resize method: immediate or delayed (overrides config)")
	path := fs.String("config", "", "Config file path (default: ~/.config/dpiwatch/config.yaml)")
	level := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpiwatch watch [--title TEXT] [--method immediate|delayed] [--config PATH] [--log-level LEVEL]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keep a window scaled to the DPI of the monitor it is on. Runs in the")
		fmt.Fprintln(os.Stderr, "foreground until interrupted.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *method != "" {
		m, err := config.ParseResizeMethod(*method)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		cfg.ResizeMethod = m
	}
	if *title != "" {
		cfg.Window.Title = *title
	}

	logCfg := cfg.GetLoggingConfig()
	if *level != "" {
		logCfg.Level = *level
	}
	logger, closer, err := logging.New(logging.Options{
		Level:     logCfg.Level,
		File:      logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer closer.Close()

	backend, err := platform.NewLinuxBackendFromDisplay(linuxOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to X11: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	windowID, err := targetWindow(backend, cfg.Window.Title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to find window: %v\n", err)
		return 1
	}

	sess, err := session.New(backend, windowID, session.Options{
		Method:      resizeMethod(cfg.ResizeMethod),
		BaselineDPI: cfg.DesignDPI,
		FontSize:    cfg.Window.FontSize,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create session: %v\n", err)
		return 1
	}
	if err := sess.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		return 1
	}

	ipcServer, err := ipc.NewServer(sess, backend, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create IPC server: %v\n", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		logger.Warn("IPC server not started", "error", err)
	} else {
		defer ipcServer.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sess.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cancel()
		backend.Quit()
	}()

	logger.Info("dpiwatch started", "method", string(cfg.ResizeMethod), "window", fmt.Sprintf("0x%x", uint32(windowID)))
	backend.EventLoop()
	return 0
}

func targetWindow(backend *platform.LinuxBackend, title string) (platform.WindowID, error) {
	if title != "" {
		return backend.FindWindowByTitle(title)
	}
	return backend.ActiveWindow()
}
