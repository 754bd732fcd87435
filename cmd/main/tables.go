package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gkchan/HB-markov-twitter/pkg/markov"
	"github.com/gkchan/HB-markov-twitter/pkg/publish"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "stats [corpus...]",
		Short: "Print statistics for the chains built from the corpus",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("order") {
				a.config.Markov.Order = order
			}
			chains, err := a.loadChains(cmd.Context(), a.config.Markov.Order, a.corpusPaths(args))
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), chains.Stats())
			return nil
		},
	}
	cmd.Flags().IntVar(&order, "order", 2, "n-gram order (overrides markov_config.order)")

	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the most recently published statuses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, ledger, err := openLedger(a.config.Publish.LedgerPath)
			if err != nil {
				return err
			}
			defer func() {
				ledger.Close()
				_ = db.Close()
			}()

			posts, err := ledger.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to read ledger: %w", err)
			}
			total, err := ledger.Count(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to count ledger: %w", err)
			}

			printHistory(cmd.OutOrStdout(), posts)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d published statuses\n", len(posts), total)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of statuses to show")

	return cmd
}

// printStats writes the chain statistics to writer as an ASCII table.
func printStats(writer io.Writer, stats markov.Stats) {
	table := tablewriter.NewWriter(writer)

	table.SetHeader([]string{"Order", "Prefixes", "Links", "Unique Links", "Vocabulary", "Terminal"})
	table.Append([]string{
		strconv.Itoa(stats.Order),
		strconv.Itoa(stats.Prefixes),
		strconv.Itoa(stats.Links),
		strconv.Itoa(stats.UniqueLinks),
		strconv.Itoa(stats.Vocabulary),
		strconv.Itoa(stats.Terminal),
	})

	table.Render()
}

// printHistory writes the given posts to writer as an ASCII table.
func printHistory(writer io.Writer, posts []publish.Post) {
	table := tablewriter.NewWriter(writer)

	table.SetHeader([]string{"ID", "Platform", "Remote ID", "Published", "Status"})
	table.SetAutoWrapText(false)

	for _, p := range posts {
		table.Append([]string{
			strconv.FormatInt(p.ID, 10),
			p.Platform,
			p.RemoteID,
			p.PublishedAt.Local().Format(time.DateTime),
			p.Body,
		})
	}

	table.Render()
}
