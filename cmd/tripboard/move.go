// The move command proposes a card placement.
package main

import (
	"github.com/spf13/cobra"

	"github.com/outframe/tripboard/pkg/board"
	"github.com/outframe/tripboard/pkg/types"
)

var (
	moveFrom    string
	moveIndex   int
	moveConfirm bool
)

var moveCmd = &cobra.Command{
	Use:   "move <card-id> <target-column-id>",
	Short: "Propose moving a card into a column",
	Long: `Propose moving a card into a column at an optional index.

Card ids prefixed with catalog/ are materialized from the picker catalog
into a new owned card. Replacing or removing the destination while trip
flights are saved requires --confirm, which drops the flights and the
day-by-day itinerary.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, done, err := openEngine()
		if err != nil {
			return err
		}
		defer done()

		proposal := board.Proposal{
			ActorMayEdit:   mayEdit(),
			CardID:         args[0],
			SourceColumnID: moveFrom,
			TargetColumnID: args[1],
		}
		if cmd.Flags().Changed("index") {
			proposal.TargetIndex = &moveIndex
		}

		outcome, err := engine.Propose(proposal)
		if err != nil {
			return err
		}
		if outcome.Code == types.OutcomeRequiresConfirmation && moveConfirm {
			outcome, err = engine.ProposeConfirmed(proposal)
			if err != nil {
				return err
			}
		}
		return printOutcome(outcome)
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveFrom, "from", "", "source column id (default: located automatically)")
	moveCmd.Flags().IntVar(&moveIndex, "index", 0, "position within the target column (default: append)")
	moveCmd.Flags().BoolVar(&moveConfirm, "confirm", false, "confirm destination replacement, dropping flights and itinerary")
}
