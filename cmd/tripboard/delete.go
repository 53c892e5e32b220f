// The delete command removes a user card from the board.
package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a user-created card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		outcome, err := engine.Delete(mayEdit(), args[0])
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}
