// Command hostlogd runs the host logging service: it owns the
// process-wide logger and exposes the administrative API used to
// configure the sink at runtime.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/vhostd/hostlog/config"
	"github.com/vhostd/hostlog/internal/api"
	"github.com/vhostd/hostlog/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "hostlogd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := &config.Config{API: config.APIConfig{ListenAddr: "127.0.0.1:8645"}}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	threshold, err := cfg.Threshold()
	if err != nil {
		return err
	}

	log := logger.NewBuilder().
		WithInstanceID(instanceID).
		WithThreshold(threshold).
		WithShowLevel(cfg.ShowLevel()).
		WithShowOrigin(cfg.ShowLogOrigin()).
		WithQueueSize(cfg.Logger.QueueSize).
		Build()
	defer log.Close()
	logger.SetDefault(log)

	// A sink in the config file is configured up front; otherwise the
	// logger stays on stderr until the API configures one.
	if cfg.Logger.LogPath != "" {
		err := log.Configure(logger.Config{
			LogPath:    cfg.Logger.LogPath,
			Threshold:  threshold,
			ShowLevel:  cfg.ShowLevel(),
			ShowOrigin: cfg.ShowLogOrigin(),
		})
		if err != nil {
			return err
		}
	}

	srv := api.NewServer(cfg.API, log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-errCh
}
