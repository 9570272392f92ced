package main

import (
	"context"
	"fmt"
	"io"

	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/links"
	"github.com/igegov/cv-portfolio/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Maintain game links of a portfolio collection",
}

var linksSlugifyCmd = &cobra.Command{
	Use:   "slugify",
	Short: "Generate game URLs from game names",
	RunE:  runLinksSlugify,
}

var linksCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check game URLs and try alternative slugs for broken ones",
	RunE:  runLinksCheck,
}

var (
	linksContent     string
	linksCollection  string
	linksBase        string
	linksApply       bool
	linksConcurrency int
	linksTitles      bool
)

func init() {
	linksCmd.PersistentFlags().StringVarP(&linksContent, "content", "c", "", "Path to the content file (JSON or YAML)")
	linksCmd.PersistentFlags().StringVar(&linksCollection, "collection", "", "Portfolio item id (default: first collection)")
	linksCmd.PersistentFlags().StringVar(&linksBase, "base", "", "Base URL for game slugs")
	linksCmd.PersistentFlags().BoolVar(&linksApply, "apply", false, "Write updated URLs back to the content file")

	linksCheckCmd.Flags().IntVar(&linksConcurrency, "concurrency", 0, "Parallel checks (default 8)")
	linksCheckCmd.Flags().BoolVar(&linksTitles, "titles", false, "Fetch page titles of valid links")

	linksCmd.AddCommand(linksSlugifyCmd, linksCheckCmd)
	rootCmd.AddCommand(linksCmd)
}

type linksOptions struct {
	Content     string
	Collection  string
	Base        string
	Apply       bool
	Concurrency int
	Titles      bool
	Verbose     bool
}

func currentLinksOptions() linksOptions {
	concurrency := settings.Concurrency
	if linksConcurrency > 0 {
		concurrency = linksConcurrency
	}
	return linksOptions{
		Content:     firstNonEmpty(linksContent, settings.Content),
		Collection:  linksCollection,
		Base:        firstNonEmpty(linksBase, settings.GamesBaseURL),
		Apply:       linksApply,
		Concurrency: concurrency,
		Titles:      linksTitles,
		Verbose:     settings.Verbose,
	}
}

func runLinksSlugify(cmd *cobra.Command, _ []string) error {
	return slugifyLinks(currentLinksOptions(), cmd.OutOrStdout())
}

func runLinksCheck(cmd *cobra.Command, _ []string) error {
	return checkLinks(cmd.Context(), currentLinksOptions(), cmd.OutOrStdout())
}

// slugifyLinks fills missing game URLs of the collection
func slugifyLinks(opts linksOptions, out io.Writer) error {
	if opts.Content == "" {
		return fmt.Errorf("--content is required")
	}
	cv, err := content.Load(opts.Content)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	item, err := links.FindCollection(cv, opts.Collection)
	if err != nil {
		return err
	}

	changed := links.GenerateURLs(item, opts.Base)
	for _, g := range item.Games {
		fmt.Fprintf(out, "%s -> %s\n", g.Name, g.URL)
	}
	fmt.Fprintf(out, "%d of %d URLs changed\n", changed, len(item.Games))

	if opts.Apply && changed > 0 {
		if err := content.Save(opts.Content, cv); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated %s\n", opts.Content)
	}
	return nil
}

// checkLinks verifies the collection's game URLs and prints a status table.
// Broken links do not fail the command.
func checkLinks(ctx context.Context, opts linksOptions, out io.Writer) error {
	if opts.Content == "" {
		return fmt.Errorf("--content is required")
	}
	cv, err := content.Load(opts.Content)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	item, err := links.FindCollection(cv, opts.Collection)
	if err != nil {
		return err
	}

	checker := &links.Checker{
		BaseURL:     opts.Base,
		Concurrency: opts.Concurrency,
		FetchTitles: opts.Titles,
		Logger:      logger,
	}
	results, err := checker.Check(ctx, item.Games)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "TITLE | STATUS | URL")
	for _, r := range results {
		line := fmt.Sprintf("%s | %s | %s", r.Title, r.Reason(), r.URL)
		if r.PageTitle != "" {
			line += " | " + r.PageTitle
		}
		fmt.Fprintln(out, line)
	}
	observability.NewPrinter(out).PrintLinkSummary(links.Summarize(results))

	if opts.Apply {
		changed := links.ApplyResults(item, results)
		if changed > 0 {
			if err := content.Save(opts.Content, cv); err != nil {
				return err
			}
		}
		logger.Info("link results applied", zap.Int("changed", changed), zap.String("content", opts.Content))
		fmt.Fprintf(out, "%d URLs updated\n", changed)
	}
	return nil
}
