// The vote command toggles a member's vote on a card.
package main

import (
	"github.com/spf13/cobra"
)

var voteMember string

var voteCmd = &cobra.Command{
	Use:   "vote <card-id>",
	Short: "Toggle a vote on a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		outcome, err := engine.ToggleVote(mayEdit(), args[0], voteMember)
		if err != nil {
			return err
		}
		return printOutcome(outcome)
	},
}

func init() {
	voteCmd.Flags().StringVar(&voteMember, "member", "me", "member id casting the vote")
}
