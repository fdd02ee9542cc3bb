package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"salience/internal/api"
	"salience/internal/source"
)

const maxSentenceColumn = 72

type summarizeFlags struct {
	url              string
	title            string
	stopWords        string
	html             bool
	asJSON           bool
	explain          bool
	noCache          bool
	refresh          bool
	significantWords int
	clusterGap       int
}

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var flags summarizeFlags

	cmd := &cobra.Command{
		Use:     "summarize [file|-]",
		Aliases: []string{"sum"},
		Short:   "Print the salient sentences of a document",
		Long: "Summarize reads a document from a file, standard input (\"-\" or a pipe), or --url " +
			"and prints the selected sentences in document order, one per line.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, ctx, args, flags)
		},
	}
	addDocumentFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "Show per-sentence scores and the selection cutoff")
	return cmd
}

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var flags summarizeFlags

	cmd := &cobra.Command{
		Use:   "explain [file|-]",
		Short: "Show how each sentence of a document scored",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.explain = true
			return runSummarize(cmd, ctx, args, flags)
		},
	}
	addDocumentFlags(cmd, &flags)
	return cmd
}

func addDocumentFlags(cmd *cobra.Command, flags *summarizeFlags) {
	cmd.Flags().StringVar(&flags.url, "url", "", "Fetch the document from an http(s) URL")
	cmd.Flags().BoolVar(&flags.html, "html", false, "Treat the input as HTML and extract the article text")
	cmd.Flags().StringVar(&flags.title, "title", "", "Title recorded with the digest")
	cmd.Flags().IntVarP(&flags.significantWords, "significant-words", "n", 0, "Significant-word cap (default from config)")
	cmd.Flags().IntVarP(&flags.clusterGap, "cluster-gap", "g", 0, "Position gap that starts a new cluster (default from config)")
	cmd.Flags().StringVar(&flags.stopWords, "stop-words", "", "Stop-word file replacing the configured list")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Neither read nor write the digest cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "Recompute even when a cached digest exists")
}

func runSummarize(cmd *cobra.Command, ctx *commandContext, args []string, flags summarizeFlags) error {
	for _, name := range []string{"significant-words", "cluster-gap"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		value, _ := cmd.Flags().GetInt(name)
		if value < 1 {
			return fmt.Errorf("--%s must be at least 1, got %d", name, value)
		}
	}

	req, err := documentRequest(cmd, args, flags)
	if err != nil {
		return err
	}
	doc, err := ctx.reader(cmd).Read(cmd.Context(), req)
	if err != nil {
		return err
	}

	svc, closeFn, err := ctx.openService(serviceOptions{
		stopWordsFile: flags.stopWords,
		noCache:       flags.noCache,
	})
	if err != nil {
		return err
	}
	defer closeFn()

	title := strings.TrimSpace(flags.title)
	if title == "" {
		title = doc.Title
	}
	out, err := svc.Summarize(cmd.Context(), api.SummarizeRequest{
		Text:             doc.Text,
		Title:            title,
		Origin:           doc.Origin,
		SignificantWords: flags.significantWords,
		ClusterGap:       flags.clusterGap,
		Refresh:          flags.refresh,
	}, flags.explain)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case flags.explain && flags.asJSON:
		return writeJSON(cmd, api.ExplainResponseFrom(out))
	case flags.explain:
		printExplain(w, api.ExplainResponseFrom(out))
	case flags.asJSON:
		return writeJSON(cmd, api.SummaryResponseFrom(out))
	default:
		for _, sentence := range out.Record.Summary {
			fmt.Fprintln(w, sentence)
		}
	}
	return nil
}

func documentRequest(cmd *cobra.Command, args []string, flags summarizeFlags) (source.Request, error) {
	if strings.TrimSpace(flags.url) != "" {
		if len(args) > 0 {
			return source.Request{}, errors.New("pass either a file or --url, not both")
		}
		return source.Request{URL: strings.TrimSpace(flags.url)}, nil
	}
	if len(args) == 1 {
		return source.Request{Path: args[0], HTML: flags.html}, nil
	}
	if isTerminal(cmd.InOrStdin()) {
		return source.Request{}, errors.New("no input: pass a file, --url, or pipe text on standard input")
	}
	return source.Request{Path: source.StdinPath, HTML: flags.html}, nil
}

func printExplain(w io.Writer, resp api.ExplainResponse) {
	if resp.Title != "" {
		fmt.Fprintf(w, "Title: %s\n", resp.Title)
	}
	words := make([]string, 0, len(resp.Significant))
	for _, wf := range resp.Significant {
		words = append(words, fmt.Sprintf("%s (%d)", wf.Word, wf.Count))
	}
	if len(words) == 0 {
		fmt.Fprintln(w, "Significant words: none")
	} else {
		fmt.Fprintf(w, "Significant words: %s\n", strings.Join(words, ", "))
	}

	rows := make([][]string, 0, len(resp.Sentences))
	for _, s := range resp.Sentences {
		score := "-"
		if s.Scored {
			score = strconv.FormatFloat(s.Score, 'f', 3, 64)
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Index + 1),
			score,
			yesNo(s.Selected),
			truncate(s.Text, maxSentenceColumn),
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, renderTable(
			[]string{"#", "Score", "Selected", "Sentence"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
		))
	}
	fmt.Fprintf(w, "Scored: %d  Mean: %.3f  StdDev: %.3f  Cutoff: %.3f\n",
		resp.Scored, resp.Mean, resp.StdDev, resp.Cutoff)

	if len(resp.Summary) == 0 {
		fmt.Fprintln(w, "Summary: none")
		return
	}
	fmt.Fprintln(w, "Summary:")
	for _, sentence := range resp.Summary {
		fmt.Fprintf(w, "  %s\n", sentence)
	}
}

func truncate(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
