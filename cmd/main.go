package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/documind-ai/documind/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "documind",
		Short: "documind",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
