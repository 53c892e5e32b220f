// The init command seeds a fresh board in the data directory.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/outframe/tripboard/pkg/board"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the board's fixed columns and built-in cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, done, err := openStore()
		if err != nil {
			return err
		}
		defer done()

		if err := board.Seed(store); err != nil {
			return fmt.Errorf("seed board: %w", err)
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Println("Board initialized in", dataDir)
		return nil
	},
}
