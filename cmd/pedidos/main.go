package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "pedidos",
		Short:         "Ferramentas do processador de pedidos",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newDemoCmd(), newLintCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
