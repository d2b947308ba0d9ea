package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Live game commands against a server",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameUndoCmd())
	cmd.AddCommand(newGameLegalCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var seats string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game",
		Long: `Create a game with one entry per seat, in turn order starting with blue.
Each entry is "human" or a strategy name. Bot seats that open the game move
immediately.`,
		Example: "  tilewe game create --seats human,random,largest-piece,turtle",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"seats": splitList(seats)}
			var result GameState

			if err := client.Post(cmd.Context(), "/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&seats, "seats", "human,random,random,random", "Comma separated seats")
	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameList

			if err := client.Get(cmd.Context(), "/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get(cmd.Context(), gamePath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "move <id> <color> <move>",
		Short:   "Play a move for a human seat",
		Example: "  tilewe game move AB12CD blue O1n-a1a1",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"color": strings.ToLower(args[1]),
				"move":  args[2],
			}
			var result GameState

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/moves", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Take back the last move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post(cmd.Context(), gamePath(args[0])+"/undo", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLegalCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "legal <id>",
		Short: "List legal moves for the side to move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("%s/moves?unique=%t", gamePath(args[0]), !all)
			var result LegalMoves

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include moves that cover the same tiles as another")
	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), gamePath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}

func gamePath(id string) string {
	return "/api/v1/games/" + url.PathEscape(id)
}

// splitList splits a comma separated flag, keeping empty entries
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
