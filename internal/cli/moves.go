package cli

import (
	"github.com/spf13/cobra"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/services/match"
)

func newMovesCmd() *cobra.Command {
	var (
		after     string
		players   int
		all       bool
		showBoard bool
	)

	cmd := &cobra.Command{
		Use:   "moves",
		Short: "List legal moves after a move sequence",
		Example: `  tilewe moves
  tilewe moves --players 2 --after "O1n-a1a1,I2n-t20t19"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := match.Rebuild(players, splitMoves(after))
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			if showBoard && cfg.Output != "json" {
				out.printBoard(b.Rows())
			}

			legal := b.GenerateLegalMoves(!all)
			result := LegalMoves{
				Unique: !all,
				Count:  len(legal),
				Moves:  model.MoveStrings(legal),
			}
			if !b.Finished() {
				result.Color = b.CurrentPlayer().String()
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Moves already played, comma separated")
	cmd.Flags().IntVar(&players, "players", 4, "Number of players (1-4)")
	cmd.Flags().BoolVar(&all, "all", false, "Include moves that cover the same tiles as another")
	cmd.Flags().BoolVar(&showBoard, "board", false, "Print the position first")
	return cmd
}
