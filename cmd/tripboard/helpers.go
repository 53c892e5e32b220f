// Shared helpers for tripboard subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/outframe/tripboard/pkg/board"
	"github.com/outframe/tripboard/pkg/memstore"
	"github.com/outframe/tripboard/pkg/sqlite"
	"github.com/outframe/tripboard/pkg/types"
)

// openStore opens the configured board store. The returned cleanup must be
// called when the command is done.
func openStore() (types.DocumentStore, func(), error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, err
	}
	cfg := types.Config{Backend: configBackend, DataDir: dataDir}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Backend == types.BackendMemory {
		// Throwaway board, useful for dry runs against a seeded state.
		store := memstore.New(cfg.ActorID)
		if err := board.Seed(store); err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	store, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open board: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// openEngine opens the board store and builds an engine over it.
func openEngine() (*board.Engine, func(), error) {
	store, done, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	engine := board.New(store, board.Options{
		Guidance: board.NewStaticGuidance(nil),
	})
	return engine, done, nil
}

// mayEdit reports the actor permission the engine should honor.
func mayEdit() bool {
	return !flagReadOnly
}

// printOutcome reports an engine outcome to the user, honoring --json.
func printOutcome(outcome types.Outcome) error {
	if flagJSON {
		return printJSON(outcome)
	}
	switch outcome.Code {
	case types.OutcomeAccepted:
		fmt.Printf("ok (%d changes)\n", len(outcome.Changes))
	case types.OutcomeNoOp:
		fmt.Println("no change")
	case types.OutcomeRequiresConfirmation:
		fmt.Println("blocked: replacing the destination drops saved flights and the itinerary; re-run with --confirm")
	default:
		fmt.Printf("rejected: %s\n", outcome.Code)
	}
	if !outcome.Accepted() && outcome.Code != types.OutcomeNoOp {
		os.Exit(exitUserError)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
