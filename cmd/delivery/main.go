package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"

	delivery "github.com/goliatone/go-delivery"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("delivery: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("delivery", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (defaults apply when empty)")
	address := fs.String("addr", "", "Listen address, overrides server.address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *address != "" {
		cfg.Server.Address = *address
	}

	module, err := delivery.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	server := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return fiber.New(fiber.Config{
			AppName:               "go-delivery",
			DisableStartupMessage: true,
		})
	})
	if err := delivery.RegisterRoutes(module, server.Router()); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Server.Address)
		errs <- server.Serve(cfg.Server.Address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errs:
		return err
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadConfig(path string) (delivery.Config, error) {
	if path == "" {
		cfg := delivery.DefaultConfig()
		return cfg, cfg.Validate()
	}
	return delivery.LoadConfig(path)
}
