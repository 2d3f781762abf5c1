package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"shelf/internal/ipc"
)

func newImageCommand(ctx *commandContext) *cobra.Command {
	var link string
	var output string
	cmd := &cobra.Command{
		Use:   "image [entry-id]",
		Short: "Fetch the cover image for an entry or link",
		Long: "Returns the cached cover when present, otherwise fetches it from the " +
			"source page and caches it. Pass an entry id or --link.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			link = strings.TrimSpace(link)
			if (len(args) == 0) == (link == "") {
				return errors.New("pass exactly one of an entry id or --link")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				var img *ipc.Image
				var err error
				if link != "" {
					img, err = client.GetImageByLink(link)
				} else {
					img, err = client.GetImageForEntry(args[0])
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if output == "-" {
					_, err := out.Write(img.Data)
					return err
				}
				if output != "" {
					if err := os.WriteFile(output, img.Data, 0o644); err != nil {
						return fmt.Errorf("write image: %w", err)
					}
					fmt.Fprintf(out, "Wrote %s (%s, %s)\n", output, img.ContentType, humanize.IBytes(uint64(len(img.Data))))
					return nil
				}
				fmt.Fprintf(out, "Cover for %s: %s, %s\n", img.Link, img.ContentType, humanize.IBytes(uint64(len(img.Data))))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&link, "link", "", "Source page URL instead of an entry id")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write image bytes to this file (- for stdout)")
	return cmd
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the cover image cache",
	}

	var asJSON bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached covers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				images, err := client.ListImages()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, images)
				}
				out := cmd.OutOrStdout()
				if len(images) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Link", "Type", "Size", "Fetched"},
					buildImageRows(images),
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				removed, err := client.ClearImages()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached cover(s)\n", removed)
				return nil
			})
		},
	}

	cacheCmd.AddCommand(listCmd, clearCmd)
	return cacheCmd
}
