package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shelf/internal/catalog"
	"shelf/internal/ipc"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all entries to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportEntries()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if output == "-" {
					_, err := fmt.Fprint(out, resp.Document)
					return err
				}
				target := output
				if target == "" {
					target = catalog.ExportFileName(time.Now())
				}
				if err := os.WriteFile(target, []byte(resp.Document), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(out, "Exported %d entries to %s\n", resp.Count, target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default catalog-YYYY-MM-DD.json, - for stdout)")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Create entries from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				entries, err := client.ImportEntries(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries\n", len(entries))
				return nil
			})
		},
	}
}
