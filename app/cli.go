// Package app is the main cmd app
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/htol/ebookstore/book"
	"github.com/htol/ebookstore/config"
	"github.com/htol/ebookstore/logger"
	"github.com/htol/ebookstore/repo"
	"github.com/htol/ebookstore/service"
	"golang.org/x/net/html/charset"
)

func CLI(args []string) int {
	app := appEnv{stdin: os.Stdin, stdout: os.Stdout}
	if err := app.fromArgs(args); err != nil {
		fmt.Println(err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx); err != nil {
		logger.Error("Runtime error", "error", err)
		return 1
	}
	return 0
}

type appEnv struct {
	config *config.Config
	cmd    string
	stdin  io.Reader
	stdout io.Writer
}

func (app *appEnv) fromArgs(args []string) error {
	fl := flag.NewFlagSet("ebookstore", flag.ContinueOnError)

	configPath := fl.String("config", os.Getenv(config.EnvConfigFile), "Path to YAML config file")
	dbPath := fl.String("db", "", "Path to database file (overrides DB_PATH)")
	driver := fl.String("driver", "", "Database driver: sqlite3 or sqlite (overrides DB_DRIVER)")
	logLevel := fl.String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	fl.Usage = func() {
		fmt.Fprintf(fl.Output(), "Usage: ebookstore [flags] [menu|init|list]\n")
		fl.PrintDefaults()
	}

	if err := fl.Parse(args); err != nil {
		return err
	}
	if fl.NArg() > 1 {
		fl.Usage()
		return fmt.Errorf("too many arguments: %s", strings.Join(fl.Args(), " "))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// CLI flags override file and environment
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	app.cmd = "menu"
	if fl.NArg() == 1 {
		app.cmd = fl.Arg(0)
	}
	app.config = cfg

	return nil
}

func (app *appEnv) run(ctx context.Context) error {
	logger.Setup(logger.Options{
		Level:  app.config.Log.Level,
		Format: app.config.Log.Format,
		File:   app.config.Log.File,
	})
	defer logger.Close()

	switch app.cmd {
	case "menu", "init", "list":
	default:
		return fmt.Errorf("unknown command %s", app.cmd)
	}

	storage, err := repo.Open(app.config.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Error("Error closing storage", "error", err)
		}
	}()
	svc := service.New(storage)

	switch app.cmd {
	case "menu":
		in, err := inputReader(app.stdin, app.config.Menu.Charset)
		if err != nil {
			return err
		}
		return NewMenu(svc, in, app.stdout).Run(ctx)
	case "init":
		res, err := svc.Initialize(ctx)
		if err != nil {
			return err
		}
		if !res.Seeded {
			fmt.Fprintln(app.stdout, msgDuplicate)
		}
		printBooks(app.stdout, res.Books)
	case "list":
		books, err := svc.ListBooks(ctx)
		if err != nil {
			return err
		}
		printBooks(app.stdout, books)
	}
	return nil
}

// inputReader decodes menu input from the configured charset to UTF-8
func inputReader(r io.Reader, label string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return r, nil
	}
	decoded, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("input charset %q: %w", label, err)
	}
	return decoded, nil
}

func printBooks(w io.Writer, books []book.Book) {
	for _, b := range books {
		fmt.Fprintln(w, b)
	}
}
