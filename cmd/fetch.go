package cmd

import (
	"fmt"

	"github.com/jsphweid/musicbox/agent"
	"github.com/jsphweid/musicbox/config"
	"github.com/jsphweid/musicbox/library"
	"github.com/jsphweid/musicbox/parse"
	"github.com/jsphweid/musicbox/scrape"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchSimplify bool

func init() {
	fetchCmd.Flags().BoolVar(&fetchSimplify, "simplify", false, "transpose into an easier key (Kid Mode)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <song> <artist>",
	Short: "Fetches chords for a song",
	Long:  `Searches the web for a song's chords and saves a rendered sheet into the library.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		parser, err := parse.NewGeminiParser(ctx, cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return err
		}
		lib, err := library.Open(cfg.LibraryDir)
		if err != nil {
			return err
		}

		pipeline := agent.Pipeline{
			Search: scrape.Search,
			Fetch:  scrape.FetchTab,
			Parser: parser,
			Lib:    lib,
			Log:    log,
		}

		result := pipeline.FetchChords(ctx, args[0], args[1], fetchSimplify)
		if result["success"] != true {
			return fmt.Errorf("%v", result["error"])
		}
		fmt.Printf("saved %v\nsheet: %v\n", result["name"], result["sheet_path"])
		return nil
	},
}
