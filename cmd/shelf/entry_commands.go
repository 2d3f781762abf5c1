package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelf/internal/ipc"
)

type entryFlags struct {
	name   string
	score  float64
	review string
	link   string
	status string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Title of the entry")
	cmd.Flags().Float64Var(&f.score, "score", 0, "Rating")
	cmd.Flags().StringVar(&f.review, "review", "", "Free-form review text")
	cmd.Flags().StringVar(&f.link, "link", "", "Source page URL (used to fetch the cover)")
	cmd.Flags().StringVar(&f.status, "status", "", "completed, dropped, waiting, or none")
}

func newEntryCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newAddCommand(ctx),
		newShowCommand(ctx),
		newEditCommand(ctx),
		newDeleteCommand(ctx),
		newListCommand(ctx),
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a catalog entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := flags.name
			if len(args) == 1 {
				name = args[0]
			}
			input := ipc.EntryInput{
				Name:   strings.TrimSpace(name),
				Score:  flags.score,
				Review: flags.review,
				Link:   flags.link,
				Status: flags.status,
			}
			return ctx.withClient(func(client *ipc.Client) error {
				entry, err := client.CreateEntry(input)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", entry.Name, entry.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				entry, err := client.GetEntry(args[0])
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("entry %s not found", args[0])
				}
				if asJSON {
					return writeJSON(cmd, entry)
				}
				renderEntryDetail(cmd, *entry)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderEntryDetail(cmd *cobra.Command, entry ipc.Entry) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:       %s\n", entry.ID)
	fmt.Fprintf(out, "Name:     %s\n", entry.Name)
	fmt.Fprintf(out, "Score:    %s\n", formatScore(entry.Score))
	fmt.Fprintf(out, "Status:   %s\n", statusLabel(entry.Status))
	if entry.Link != "" {
		fmt.Fprintf(out, "Link:     %s\n", entry.Link)
	}
	if entry.Review != "" {
		fmt.Fprintf(out, "Review:   %s\n", entry.Review)
	}
	fmt.Fprintf(out, "Created:  %s\n", entry.CreatedAt)
	fmt.Fprintf(out, "Updated:  %s\n", entry.UpdatedAt)
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				entry, err := client.GetEntry(args[0])
				if err != nil {
					return err
				}
				if entry == nil {
					return fmt.Errorf("entry %s not found", args[0])
				}
				changed := cmd.Flags().Changed
				if changed("name") {
					entry.Name = flags.name
				}
				if changed("score") {
					entry.Score = flags.score
				}
				if changed("review") {
					entry.Review = flags.review
				}
				if changed("link") {
					entry.Link = flags.link
				}
				if changed("status") {
					entry.Status = flags.status
				}
				updated, err := client.UpdateEntry(*entry)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Name, updated.ID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a catalog entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				existed, err := client.DeleteEntry(args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !existed {
					fmt.Fprintf(out, "Entry %s not found\n", args[0])
					return nil
				}
				fmt.Fprintf(out, "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var statuses []string
	var search string
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				entries, err := client.ListEntries(ipc.ListEntriesRequest{Statuses: statuses, Query: search})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No entries")
					return nil
				}
				fmt.Fprintln(out, renderEntryTable(entries))
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Only show entries with these statuses")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive name search")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
