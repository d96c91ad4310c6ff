package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "chatrelay",
		Short: "Webhook relay bot that replies to allow-listed chat users",
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the relay HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
