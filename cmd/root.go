package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "musicbox",
	Short: "Guitar chord sheets for the living room",
	Long:  `Fetches, cleans up and renders guitar chord sheets with chord diagrams.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
