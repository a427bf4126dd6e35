package main

import "github.com/spf13/cobra"

func newDonationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "donations", Short: "Locally remembered donations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List campaigns already donated to",
		RunE: withApp(func(_ *cobra.Command, a *app, _ []string) error {
			return a.print(a.donations.List())
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "mark CAMPAIGN_ID",
		Short: "Remember a donation to a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(_ *cobra.Command, a *app, args []string) error {
			a.donations.Mark(args[0])
			return a.print(map[string]any{"campaignId": args[0], "donated": a.donations.Has(args[0])})
		}),
	})
	return cmd
}
