package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/fatih/color"
	"github.com/gkchan/HB-markov-twitter/pkg/markov"
	"github.com/gkchan/HB-markov-twitter/pkg/publish"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	order     int
	sentence  bool
	maxTokens int
	seed      uint64
	platform  string
	tag       string
	yes       bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate [corpus...]",
		Short: "Generate one text and print it, or publish it with --publish",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.applyGenerateFlags(cmd, &flags)
			return a.runGenerate(cmd, args, &flags)
		},
	}

	cmd.Flags().IntVar(&flags.order, "order", 2, "n-gram order (overrides markov_config.order)")
	cmd.Flags().BoolVar(&flags.sentence, "sentence", true, "stop at the first sentence boundary after the seed")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "cap on generated tokens, 0 for no cap")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for reproducible output, 0 for random")
	cmd.Flags().StringVar(&flags.platform, "publish", "", "publish to a platform (discord, telegram)")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "tag appended to the published status")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "publish without asking for confirmation")

	return cmd
}

// applyGenerateFlags copies explicitly set flags over the loaded config.
func (a *app) applyGenerateFlags(cmd *cobra.Command, flags *generateFlags) {
	m, p := a.config.Markov, a.config.Publish
	if cmd.Flags().Changed("order") {
		m.Order = flags.order
	}
	if cmd.Flags().Changed("sentence") {
		m.StopAtSentenceBoundary = flags.sentence
	}
	if cmd.Flags().Changed("max-tokens") {
		m.MaxTokens = flags.maxTokens
	}
	if cmd.Flags().Changed("publish") {
		p.Platform = flags.platform
	}
	if cmd.Flags().Changed("tag") {
		p.Tag = flags.tag
	}
	if flags.yes {
		p.Confirm = false
	}
}

func (a *app) generateOptions(seed uint64) []markov.GenerateOption {
	opts := []markov.GenerateOption{
		markov.WithSentenceLimit(a.config.Markov.StopAtSentenceBoundary),
		markov.WithMaxTokens(a.config.Markov.MaxTokens),
	}
	if seed != 0 {
		opts = append(opts, markov.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	return opts
}

func (a *app) runGenerate(cmd *cobra.Command, args []string, flags *generateFlags) error {
	ctx := cmd.Context()

	chains, err := a.loadChains(ctx, a.config.Markov.Order, a.corpusPaths(args))
	if err != nil {
		return err
	}
	opts := a.generateOptions(flags.seed)

	if a.config.Publish.Platform == "" {
		text, err := a.generator.Generate(ctx, chains, opts...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	return a.publishGenerated(cmd, chains, opts)
}

// publishGenerated samples a status that fits the platform and has not been
// posted there before, then publishes it once confirmed.
func (a *app) publishGenerated(cmd *cobra.Command, chains *markov.Chains, opts []markov.GenerateOption) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	pc := a.config.Publish

	p, err := a.newPublisher(pc.Platform, nil)
	if err != nil {
		return err
	}
	if publish.Budget(p, pc.Tag) < 1 {
		return fmt.Errorf("%w: tag %q leaves no room for text on %s", publish.ErrTooLong, pc.Tag, p.Platform())
	}

	db, ledger, err := openLedger(pc.LedgerPath)
	if err != nil {
		return err
	}
	defer func() {
		ledger.Close()
		_ = db.Close()
	}()
	ledger.SetLogger(a.logger)

	text, err := a.generator.Sample(ctx, chains, pc.MaxAttempts, unpublishedWithin(ledger, p, pc.Tag), opts...)
	if err != nil {
		return err
	}
	status := publish.Compose(text, pc.Tag)

	account, err := p.Verify(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, color.New(color.FgCyan, color.Bold).Sprint(status))

	if pc.Confirm {
		ok, err := a.confirm(fmt.Sprintf("Publish to %s as %s? [y/N] ", p.Platform(), account))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Not published.")
			return nil
		}
	}

	remoteID, err := p.Publish(ctx, status)
	if err != nil {
		return err
	}
	a.logger.Info("Status published", "platform", p.Platform(), "account", account, "remote_id", remoteID)

	if err = ledger.Record(ctx, publish.Post{Platform: p.Platform(), RemoteID: remoteID, Body: status}); err != nil {
		// Already posted, so report it rather than fail.
		a.logger.Error("Failed to record published status", "error", err)
	}

	_, _ = fmt.Fprintln(out, color.GreenString("Published to %s (id %s).", p.Platform(), remoteID))
	return nil
}

// unpublishedWithin accepts text that fits p alongside tag and whose composed
// status is not in the ledger for p's platform.
func unpublishedWithin(ledger *publish.Ledger, p publish.Publisher, tag string) markov.Acceptor {
	fits := markov.WithinLength(publish.Budget(p, tag))
	return func(ctx context.Context, text string) (bool, error) {
		ok, err := fits(ctx, text)
		if err != nil || !ok {
			return false, err
		}
		seen, err := ledger.Seen(ctx, p.Platform(), publish.Compose(text, tag))
		if err != nil {
			return false, err
		}
		return !seen, nil
	}
}
