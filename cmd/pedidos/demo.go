package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"processador-pedidos/logging"
	"processador-pedidos/orders"
	"processador-pedidos/orders/application"
	"processador-pedidos/orders/domain"
	"processador-pedidos/orders/infra"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newDemoCmd() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Processa os pedidos de exemplo com cada combinação de pagamento e notificação",
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New(logging.Config{Level: level, Output: zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}})
			return runDemo(cmd.Context(), cmd.OutOrStdout(), log)
		},
	}
	cmd.Flags().StringVar(&level, "log-level", "info", "nível de log (debug, info, warn)")
	return cmd
}

type demoStep struct {
	title  string
	preset string
	order  domain.Order
}

// runDemo reproduz o roteiro de demonstração: três presets e uma combinação
// personalizada (Pix só com SMS).
func runDemo(ctx context.Context, out io.Writer, log zerolog.Logger) error {
	store := infra.NewMemoryStore()
	events := infra.NewMemoryEvents()
	f := application.Factory{
		Presets: orders.DefaultPresets(orders.PresetOptions{Logger: log}),
		Store:   store,
		Events:  events,
		Logger:  log,
	}

	steps := []demoStep{
		{"PROCESSAMENTO COM CARTÃO + EMAIL", orders.PresetCardEmail,
			domain.Order{ID: 123, AmountCents: 15075, CustomerEmail: "cliente@exemplo.com"}},
		{"PROCESSAMENTO COM BOLETO + EMAIL", orders.PresetBoletoEmail,
			domain.Order{ID: 456, AmountCents: 29990, CustomerEmail: "outro@exemplo.com"}},
		{"PROCESSAMENTO COM PIX + SMS + EMAIL", orders.PresetPixSMSEmail,
			domain.Order{ID: 789, AmountCents: 8950, CustomerEmail: "cliente3@exemplo.com"}},
	}

	var errs []error
	for _, s := range steps {
		fmt.Fprintf(out, "=== %s ===\n", s.title)
		p, err := f.New(s.preset)
		if err != nil {
			return err
		}
		o := s.order
		res, err := p.Process(ctx, &o)
		if err != nil {
			errs = append(errs, err)
		}
		printOutcome(out, res, err)
	}

	fmt.Fprintln(out, "=== DEMONSTRANDO FLEXIBILIDADE ===")
	custom := f.Custom(infra.NewPix(infra.WithPaymentLogger(log)), infra.NewSMS(log))
	o := steps[0].order
	o.ID = 999
	res, err := custom.Process(ctx, &o)
	if err != nil {
		errs = append(errs, err)
	}
	printOutcome(out, res, err)

	tot := events.Total()
	fmt.Fprintf(out, "concluídos=%d falhos=%d notificações=%d\n", tot.Completed, tot.Failed, events.Notified())
	return errors.Join(errs...)
}

func printOutcome(out io.Writer, res domain.Outcome, err error) {
	if err != nil {
		fmt.Fprintf(out, "pedido #%d: %s (%v)\n\n", res.OrderID, res.Status, err)
		return
	}
	ref := ""
	if res.Receipt != nil {
		ref = res.Receipt.Method + " " + res.Receipt.Reference
	}
	fmt.Fprintf(out, "pedido #%d: %s via %s, notificados %v\n\n", res.OrderID, res.Status, ref, res.Notified)
}
