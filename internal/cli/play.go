package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/match"
)

func newPlayCmd() *cobra.Command {
	var (
		seats       string
		seed        uint64
		showBoard   bool
		showMoves   bool
		moveTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one local game between strategies",
		Long: `Play one game in-process with a strategy in every seat, in turn order
starting with blue. One to four seats are allowed.`,
		Example: "  tilewe play --seats largest-piece,random,turtle,wall-crawl --seed 7 --board",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			rnd := newRandom(cmd, seed)
			registry := bot.NewRegistry()

			names := splitList(seats)
			strategies := make([]bot.Strategy, len(names))
			for i, name := range names {
				s, err := registry.New(name, rnd)
				if err != nil {
					return err
				}
				strategies[i] = s
			}

			runner := match.NewRunner(clock.New(), rnd, moveTimeout, logger)
			rec, err := runner.Play(cmd.Context(), strategies)
			if err != nil {
				return err
			}

			result := matchResult(rec, showMoves)
			if showBoard {
				b, err := match.Replay(rec)
				if err != nil {
					return err
				}
				result.Board = b.Rows()
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&seats, "seats", "random,random,random,random", "Comma separated strategy per seat")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible game")
	cmd.Flags().BoolVar(&showBoard, "board", false, "Print the final board")
	cmd.Flags().BoolVar(&showMoves, "moves", false, "Include the move list")
	cmd.Flags().DurationVar(&moveTimeout, "move-timeout", 0, "Limit on each bot move (0 for none)")
	return cmd
}
