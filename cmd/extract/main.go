package main

import (
	"chatkeywords/internal/app/adapters/scraper"
	"chatkeywords/internal/app/infrastructure/config"
	"chatkeywords/internal/pkg/app"
	"chatkeywords/pkg/logger"
	"context"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
)

var (
	configFlag  string
	siteFlag    string
	groupFlag   bool
	verboseFlag bool
	limitFlags  []string

	rootCmd = &cobra.Command{
		Use:           "extract",
		Short:         "Extract tip and plugin events from a chat page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", app.ConfigPath, "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&groupFlag, "group", "g", false, "Print events grouped by type and payload")
	rootCmd.PersistentFlags().StringArrayVarP(&limitFlags, "limit", "l", nil, "Per-user cap for a group, as key=n (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug output to stderr")

	urlCmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Fetch a chat page and print its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := newScraper()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			events, err := sc.FetchAndExtract(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), events, groupFlag, limitFlags)
		},
	}

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Extract events from a saved HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read page: %w", err)
			}

			sc, err := newScraper()
			if err != nil {
				return err
			}

			events, err := sc.ExtractHTML(siteFlag, body)
			if err != nil {
				return err
			}
			if verboseFlag {
				fmt.Fprintf(os.Stderr, "parsed %s, %d events\n", humanize.Bytes(uint64(len(body))), len(events))
			}
			return render(cmd.OutOrStdout(), events, groupFlag, limitFlags)
		},
	}
	fileCmd.Flags().StringVarP(&siteFlag, "site", "s", "", "Site host used to pick the page layout")

	rootCmd.AddCommand(urlCmd, fileCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScraper() (*scraper.Scraper, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if verboseFlag {
		level = "debug"
	}
	log := logger.New(logger.WithFile(""), logger.WithStdout(os.Stderr))
	_ = log.SetLogLevel(level)

	return app.NewScraper(log, cfg)
}
