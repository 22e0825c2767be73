package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/musicbox/config"
	"github.com/jsphweid/musicbox/library"
	"github.com/jsphweid/musicbox/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <song.json>",
	Short: "Renders a song file into the library",
	Long:  `Renders a song file into a chord sheet and diagram strip in the library.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		song, err := loadSongFile(args[0])
		if err != nil {
			return err
		}

		lib, err := library.Open(cfg.LibraryDir)
		if err != nil {
			return err
		}

		info, err := lib.Save(*song)
		if err != nil {
			return err
		}

		fmt.Printf("sheet: %v\n", info.SheetPath)
		if info.StripPath != "" {
			fmt.Printf("strip: %v\n", info.StripPath)
		}
		return nil
	},
}

func loadSongFile(path string) (*model.Song, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read song file: %w", err)
	}
	var song model.Song
	if err := json.Unmarshal(raw, &song); err != nil {
		return nil, fmt.Errorf("could not parse song file: %w", err)
	}
	return &song, nil
}
