package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pokermesa/mesa/pkg/server"
	"github.com/pokermesa/mesa/internal/db"
)

func main() {
	var (
		addr       string
		dbPath     string
		numTables  int
		bigBlind   int64
		startBal   int64
		seed       int64
		debugLevel string
	)
	flag.StringVar(&addr, "addr", "127.0.0.1:3000", "Address to listen on")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database file (created if missing)")
	flag.IntVar(&numTables, "tables", 10, "Number of fixed tables to create at boot")
	flag.Int64Var(&bigBlind, "bigblind", 10, "Big blind for the fixed tables")
	flag.Int64Var(&startBal, "startingbalance", 1000, "Bankroll seeded for first-seen players")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed for decks (0 = random)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "mesa.sqlite")
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("MESA")
	tableLog := backend.Logger("TABL")
	httpLog := backend.Logger("HTTP")
	if level, ok := slog.LevelFromString(debugLevel); ok {
		log.SetLevel(level)
		tableLog.SetLevel(level)
		httpLog.SetLevel(level)
	}

	database, err := db.NewDB(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	manager := server.NewTableManager(server.ManagerConfig{
		Log:             tableLog,
		DB:              database,
		NumTables:       numTables,
		BigBlind:        bigBlind,
		StartingBalance: startBal,
		Seed:            seed,
	})

	log.Infof("listening on %s (db %s)", addr, dbPath)
	if err := http.ListenAndServe(addr, server.NewHandler(manager, httpLog)); err != nil {
		fmt.Fprintf(os.Stderr, "http serve error: %v\n", err)
		os.Exit(1)
	}
}
