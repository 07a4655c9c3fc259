package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/pautinka/internal/client/api"
	"github.com/iudanet/pautinka/internal/client/auth"
	"github.com/iudanet/pautinka/internal/client/cli"
	"github.com/iudanet/pautinka/internal/client/iocli"
	"github.com/iudanet/pautinka/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8000", "Server URL")
	dbPath := flag.String("db", "pautinka-client.db", "Path to local session database")
	password := flag.String("password", "", "Password (not recommended, use "+cli.PasswordEnv+" or --password-file)")
	passwordFile := flag.String("password-file", "", "Path to file containing password")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	io := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(io)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, io, args, *serverURL, *dbPath, cli.Passwords{
		FromFile: *passwordFile,
		FromArgs: *password,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(io)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, io iocli.IO, args []string, serverURL, dbPath string, passwords cli.Passwords) error {
	sessions, err := boltdb.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(serverURL)
	authService := auth.NewService(apiClient, sessions, serverURL)

	return cli.New(apiClient, authService, io, passwords).Run(ctx, args[0], args[1:])
}

func printVersion() {
	fmt.Printf("Pautinka Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
