package cli

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhamil/tilewe-go/internal/dependencies/clock"
	"github.com/nhamil/tilewe-go/internal/services/bot"
	"github.com/nhamil/tilewe-go/internal/services/tournament"
)

func newTournamentCmd() *cobra.Command {
	var (
		engines      string
		games        int
		seats        int
		parallel     int
		exportPath   string
		startingElos bool
		quiet        bool
		seed         uint64
		moveTimeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Rank strategies over many local games",
		Long: `Play games between randomly drawn engines and rank them by Elo.
An engine may be listed more than once to measure self-play spread.`,
		Example: "  tilewe tournament --engines random,largest-piece,turtle --games 200 --export games.parquet",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			rnd := newRandom(cmd, seed)
			svc := tournament.NewService(bot.NewRegistry(), nil, clock.New(), rnd, logger)

			tc := tournament.Config{
				Engines:      splitList(engines),
				Games:        games,
				Seats:        seats,
				Parallelism:  parallel,
				MoveTimeout:  moveTimeout,
				StartingElos: startingElos,
				ExportPath:   exportPath,
			}
			if !quiet {
				stderr := cmd.ErrOrStderr()
				tc.Progress = func(done int, md tournament.MatchData) {
					fmt.Fprintf(stderr, "[%d/%d] %s: %s\n", done, games,
						strings.Join(md.Record.Seats, " "), formatScores(md.Record.Scores))
				}
			}

			results, err := svc.Run(cmd.Context(), tc)
			if err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(tournamentResult(results))
			return nil
		},
	}

	cmd.Flags().StringVar(&engines, "engines", "", "Comma separated strategies to rank")
	cmd.Flags().IntVar(&games, "games", 100, "Number of games")
	cmd.Flags().IntVar(&seats, "seats", 4, "Engines per game (1-4)")
	cmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "Games played at once")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write every game to this parquet file")
	cmd.Flags().BoolVar(&startingElos, "starting-elos", false, "Start engines at their estimated Elo")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not report each game on stderr")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible draws")
	cmd.Flags().DurationVar(&moveTimeout, "move-timeout", 0, "Limit on each bot move (0 for none)")
	_ = cmd.MarkFlagRequired("engines")
	return cmd
}

func tournamentResult(r *tournament.Results) TournamentResult {
	rankings := r.Rankings()
	out := TournamentResult{
		Games:      len(r.Matches),
		RealTimeMS: r.RealTime.Milliseconds(),
		Rankings:   make([]Ranking, len(rankings)),
		Table:      r.RankingsTable(),
	}
	for i, row := range rankings {
		out.Rankings[i] = Ranking{
			Rank:     row.Rank,
			Name:     row.Name,
			Elo:      row.Elo,
			Score:    row.Score,
			AvgScore: row.AvgScore,
			Games:    row.Games,
			Wins:     row.Wins,
			Draws:    row.Draws,
			Losses:   row.Losses,
			WinRate:  row.WinRate,
		}
		if !math.IsInf(row.Margin, 0) && !math.IsNaN(row.Margin) {
			margin := row.Margin
			out.Rankings[i].Margin = &margin
		}
	}
	return out
}

func formatScores(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, " ")
}
