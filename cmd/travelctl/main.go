package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-travel-client/api"
	"github.com/jrsteele09/go-travel-client/auth"
	"github.com/jrsteele09/go-travel-client/expenses"
	"github.com/jrsteele09/go-travel-client/internal/config"
	"github.com/jrsteele09/go-travel-client/speech"
	"github.com/jrsteele09/go-travel-client/token/filestore"
	"github.com/jrsteele09/go-travel-client/trips"
	"github.com/rs/zerolog"
)

// deps bundles the composed client stack handed to every command.
type deps struct {
	session    *auth.Manager
	trips      *trips.Manager
	expenses   *expenses.Manager
	client     *api.Client
	recognizer speech.Recognizer
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	c := config.New()

	logger := newLogger(c)
	store, err := filestore.New(c.GetDataFolder())
	if err != nil {
		return err
	}

	client := api.New(c.GetAPIURL(), store,
		api.WithHTTPClient(&http.Client{Timeout: c.GetHTTPTimeout()}),
		api.WithLogger(logger),
	)

	session, err := auth.NewManager(client, store, auth.WithLogger(logger))
	if err != nil {
		return err
	}
	tripCache, err := trips.NewManager(client, trips.WithLogger(logger))
	if err != nil {
		return err
	}
	expenseCache, err := expenses.NewManager(client, expenses.WithLogger(logger))
	if err != nil {
		return err
	}

	// Cached entities never outlive the session
	session.OnSignedOut(tripCache.Reset)
	session.OnSignedOut(expenseCache.Reset)

	d := &deps{
		session:  session,
		trips:    tripCache,
		expenses: expenseCache,
		client:   client,
		// Terminals have no microphone capture; embedders swap in a real one
		recognizer: speech.Unsupported{},
	}
	return newRootCmd(c.GetAppName(), d).Execute()
}

func newLogger(c config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
