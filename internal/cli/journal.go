package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Learning goal commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <goal>",
		Short: "Set a new goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appendEntry(cmd, "goals", map[string]string{
				"goal": strings.Join(args, " "),
			})
		},
	})
	cmd.AddCommand(newListCmd("goals"))
	cmd.AddCommand(&cobra.Command{
		Use:   "complete <index>",
		Short: "Mark a goal as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("goal index must be an integer: %w", err)
			}

			if err := client.Post(fmt.Sprintf("/api/v1/journal/goals/%d/complete", index), nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Goal %d completed", index))
			return nil
		},
	})

	return cmd
}

func newReflectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflection",
		Short: "Daily reflection commands",
	}

	var challenges, solutions string
	add := &cobra.Command{
		Use:   "add <reflection>",
		Short: "Record what you learned today",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appendEntry(cmd, "reflections", map[string]string{
				"reflection": strings.Join(args, " "),
				"challenges": challenges,
				"solutions":  solutions,
			})
		},
	}
	add.Flags().StringVar(&challenges, "challenges", "", "Challenges you faced")
	add.Flags().StringVar(&solutions, "solutions", "", "How you overcame them")

	cmd.AddCommand(add)
	cmd.AddCommand(newListCmd("reflections"))

	return cmd
}

func newMistakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mistake",
		Short: "Mistake tracker commands",
	}

	var learning string
	add := &cobra.Command{
		Use:   "add <mistake>",
		Short: "Record a mistake and what it taught you",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appendEntry(cmd, "mistakes", map[string]string{
				"mistake":  strings.Join(args, " "),
				"learning": learning,
			})
		},
	}
	add.Flags().StringVar(&learning, "learning", "", "What you learned (required)")
	_ = add.MarkFlagRequired("learning")

	cmd.AddCommand(add)
	cmd.AddCommand(newListCmd("mistakes"))

	return cmd
}

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Challenge commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "catalog",
		Short: "Show suggested challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Catalog
			if err := client.Get("/api/v1/challenges", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	var notes string
	var pick int
	complete := &cobra.Command{
		Use:   "complete [challenge]",
		Short: "Record a completed challenge",
		Long: `Record a completed challenge. Pass the challenge text, or use --pick
to choose an entry from the suggested catalogue by number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			challenge := strings.Join(args, " ")
			if pick > 0 {
				var catalog Catalog
				if err := client.Get("/api/v1/challenges", &catalog); err != nil {
					return err
				}
				if pick > len(catalog.Challenges) {
					return fmt.Errorf("--pick must be between 1 and %d", len(catalog.Challenges))
				}
				challenge = catalog.Challenges[pick-1]
			}
			if challenge == "" {
				return fmt.Errorf("a challenge or --pick is required")
			}

			return appendEntry(cmd, "challenges", map[string]string{
				"challenge": challenge,
				"notes":     notes,
			})
		},
	}
	complete.Flags().StringVar(&notes, "notes", "", "What you learned (required)")
	complete.Flags().IntVar(&pick, "pick", 0, "Suggested challenge number from the catalog")
	_ = complete.MarkFlagRequired("notes")

	cmd.AddCommand(complete)
	cmd.AddCommand(newListCmd("challenges"))

	return cmd
}

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show your whole journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Journal
			if err := client.Get("/api/v1/journal", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newListCmd(category string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded " + category,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CategoryList
			if err := client.Get("/api/v1/journal/"+category, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func appendEntry(cmd *cobra.Command, category string, body map[string]string) error {
	var result CreatedEntry
	if err := client.Post("/api/v1/journal/"+category, body, &result); err != nil {
		return err
	}
	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}
