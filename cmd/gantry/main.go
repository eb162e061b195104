package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/gantry/internal/cli"
	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWBSItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	historyRepo := repository.NewSQLiteBufferHistoryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	warnings := io.Discard
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(os.Stderr)
		warnings = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(warnings, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	app := &cli.App{
		Projects:   service.NewProjectService(projectRepo, observer),
		Items:      service.NewWBSService(itemRepo, uow, observer),
		Deps:       service.NewDependencyService(depRepo, uow, observer),
		Import:     service.NewImportService(uow, observer),
		Charts:     service.NewChartService(projectRepo, itemRepo, depRepo, logger, observer),
		Chains:     service.NewChainService(projectRepo, itemRepo, depRepo, historyRepo, observer),
		Reschedule: service.NewRescheduleService(itemRepo, observer),
		Config:     cfg,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
