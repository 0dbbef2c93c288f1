package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ptpure version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("ptpure", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
