package main

import (
	"fmt"
	"os"

	"processador-pedidos/solid"

	"github.com/spf13/cobra"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint ARQUIVO.md",
		Short: "Verifica a estrutura do documento de análise SOLID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rep, err := solid.Check(f)
			if err != nil {
				return fmt.Errorf("ler %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			for _, s := range rep.Sections {
				fmt.Fprintf(out, "%d. %s - %s\n", s.Number, s.Acronym, s.Name)
			}
			if rep.OK() {
				fmt.Fprintln(out, "ok")
				return nil
			}
			for _, p := range rep.Problems {
				fmt.Fprintln(out, "problema:", p)
			}
			return fmt.Errorf("%d problema(s) em %s", len(rep.Problems), args[0])
		},
	}
}
