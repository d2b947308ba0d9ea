package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhamil/tilewe-go/internal/export"
	"github.com/nhamil/tilewe-go/internal/services/match"
)

func newReplayCmd() *cobra.Command {
	var (
		matchID   string
		showBoard bool
		showMoves bool
	)

	cmd := &cobra.Command{
		Use:   "replay <file.parquet>",
		Short: "Rebuild archived matches and report their results",
		Long: `Read a parquet move archive written by the tournament command, replay
every match through the rules engine and print the final scores. A match
whose moves are not legal in order fails the command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archived, err := export.ReadMatches(args[0])
			if err != nil {
				return err
			}

			var list MatchList
			for _, a := range archived {
				if matchID != "" && string(a.ID) != matchID {
					continue
				}
				b, err := match.Rebuild(len(a.Seats), a.Moves)
				if err != nil {
					return fmt.Errorf("match %s: %w", a.ID, err)
				}
				result := boardResult(string(a.ID), a.Seats, b)
				if showMoves {
					result.Moves = a.Moves
				}
				if showBoard {
					result.Board = b.Rows()
				}
				list.Matches = append(list.Matches, result)
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			if matchID == "" {
				out.Print(list)
				return nil
			}
			if len(list.Matches) == 0 {
				return fmt.Errorf("match %s not found in %s", matchID, args[0])
			}
			out.Print(list.Matches[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&matchID, "match", "", "Only replay this match")
	cmd.Flags().BoolVar(&showBoard, "board", false, "Include the final board")
	cmd.Flags().BoolVar(&showMoves, "moves", false, "Include the move list")
	return cmd
}
