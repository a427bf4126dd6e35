package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecommendationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "recommendations", Short: "Matchmaking recommendations"}

	var force bool
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch recommendations and store scores in the local cache",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			if !force {
				fetched, err := a.matching.EnsureFresh(cmd.Context(), a.token())
				if err != nil {
					return err
				}
				a.log.Debug().Bool("fetched", fetched).Msg("petctl: recommendations synced")
				snapshot, _ := a.cache.Read()
				return a.print(snapshot)
			}
			recs, err := a.matching.Refresh(cmd.Context(), a.token())
			if err != nil {
				return err
			}
			return a.print(recs)
		}),
	}
	syncCmd.Flags().BoolVarP(&force, "force", "f", false, "Refresh even if the cached snapshot is still valid")
	cmd.AddCommand(syncCmd)
	return cmd
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score PET_ID",
		Short: "Print the cached compatibility score for a pet",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			score, ok := a.cache.ScoreFor(args[0])
			if !ok {
				return fmt.Errorf("no cached score for %s", args[0])
			}
			return a.print(map[string]any{"petId": args[0], "score": score})
		}),
	}
}

func newAdoptCmd() *cobra.Command {
	var petID, message string
	var reasons []string
	cmd := &cobra.Command{
		Use:   "adopt",
		Short: "Submit an adoption request using the cached score",
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			var aiReasons []any
			for _, r := range reasons {
				aiReasons = append(aiReasons, r)
			}
			created, err := a.matching.Submit(cmd.Context(), a.token(), petID, message, aiReasons)
			if err != nil {
				return err
			}
			return a.print(created)
		}),
	}
	cmd.Flags().StringVarP(&petID, "pet", "p", "", "Pet ID (required)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message to the shelter")
	cmd.Flags().StringArrayVarP(&reasons, "reason", "r", nil, "Match reason (repeatable)")
	_ = cmd.MarkFlagRequired("pet")
	return cmd
}
