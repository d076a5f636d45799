// Command server runs the goboard project-board server.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "goboard",
	Short: "Collaborative project-board server",
	Long: `goboard is a collaborative project-board server: clients register,
authenticate, share projects with four ordered card lists, and receive
push notifications and per-project multicast chat.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the board server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
