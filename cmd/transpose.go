package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/musicbox/theory"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(transposeCmd)
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <song.json> <semitones>",
	Short: "Transposes a song",
	Long:  `Transposes every chord in a song file and prints the result as ChordPro.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		semitones, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("semitones must be an integer, got %q", args[1])
		}

		song, err := loadSongFile(args[0])
		if err != nil {
			return err
		}

		out := theory.TransposeSong(*song, semitones)
		fmt.Println(out.ToChordPro())
		return nil
	},
}
