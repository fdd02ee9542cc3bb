package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"salience/internal/api"
	"salience/internal/digest"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage stored digests",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheShowCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored digests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			total, err := store.Count(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, api.DigestListResponse{Items: api.FromRecords(recs), Total: total})
			}
			printDigestList(cmd.OutOrStdout(), recs, total)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum digests to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printDigestList(out io.Writer, recs []*digest.Record, total int) {
	if len(recs) == 0 {
		fmt.Fprintln(out, "No digests stored")
		return
	}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			rec.ShortID(),
			digestLabel(rec),
			strconv.Itoa(rec.SentenceCount),
			strconv.Itoa(len(rec.Summary)),
			humanize.Time(rec.CreatedAt),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Document", "Sentences", "Selected", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	if total > len(recs) {
		fmt.Fprintf(out, "Showing %d of %s\n", len(recs), english.Plural(total, "digest", ""))
	}
}

func digestLabel(rec *digest.Record) string {
	for _, candidate := range []string{rec.Title, rec.Origin} {
		if value := strings.TrimSpace(candidate); value != "" {
			return truncate(value, 48)
		}
	}
	return "(untitled)"
}

func newCacheShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored digest by ID or unique ID prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, api.DigestResponse{Item: api.FromRecord(rec)})
			}
			printDigest(cmd.OutOrStdout(), rec)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printDigest(out io.Writer, rec *digest.Record) {
	pairs := [][2]string{
		{"ID", rec.ID},
		{"Document", digestLabel(rec)},
		{"Origin", rec.Origin},
		{"Created", fmt.Sprintf("%s (%s)", rec.CreatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(rec.CreatedAt))},
		{"Sentences", fmt.Sprintf("%d (%d scored)", rec.SentenceCount, rec.ScoredCount)},
		{"Cutoff", strconv.FormatFloat(rec.Cutoff, 'f', 3, 64)},
		{"Significant", truncate(strings.Join(rec.Significant, ", "), maxSentenceColumn)},
	}
	fmt.Fprintln(out, renderDetails(pairs))
	if len(rec.Summary) == 0 {
		fmt.Fprintln(out, "Summary: none")
		return
	}
	fmt.Fprintln(out, "Summary:")
	for _, sentence := range rec.Summary {
		fmt.Fprintf(out, "  %s\n", sentence)
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove stored digests",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var failed []error
			for _, id := range args {
				if err := store.Remove(cmd.Context(), id); err != nil {
					failed = append(failed, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed digest %s\n", id)
			}
			return errors.Join(failed...)
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No digests to remove")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", english.Plural(int(removed), "digest", ""))
			return nil
		},
	}
}
