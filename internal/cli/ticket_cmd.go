package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ornina/callcenter/internal/config"
	"github.com/ornina/callcenter/internal/domain"
	"github.com/ornina/callcenter/internal/store"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Inspect and update support tickets",
	}

	cmd.AddCommand(newTicketListCmd())
	cmd.AddCommand(newTicketShowCmd())
	cmd.AddCommand(newTicketStatusCmd())

	return cmd
}

// openTicketStore requires the sqlite backend; the memory backend has
// nothing to inspect across processes.
func openTicketStore() (*store.SQLiteTicketStore, func() error, error) {
	if cfg.Store.Backend != config.BackendSQLite {
		return nil, nil, fmt.Errorf("ticket commands need store.backend=sqlite, have %q", cfg.Store.Backend)
	}
	db, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		return nil, nil, err
	}
	return store.NewSQLiteTicketStore(db), db.Close, nil
}

func newTicketListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open tickets, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, closer, err := openTicketStore()
			if err != nil {
				return err
			}
			defer closer()

			open, err := tickets.OpenTickets(cmd.Context())
			if err != nil {
				return err
			}
			if len(open) == 0 {
				fmt.Println("no open tickets")
				return nil
			}
			for _, t := range open {
				fmt.Printf("%s  %-10s %-8s %-12s %s\n",
					t.ID, t.Department, t.Priority, t.Status, t.Subject)
			}
			return nil
		},
	}
}

func newTicketShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a ticket as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, closer, err := openTicketStore()
			if err != nil {
				return err
			}
			defer closer()

			t, err := tickets.GetTicket(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if t == nil {
				return fmt.Errorf("ticket %s not found", args[0])
			}
			out, err := json.MarshalIndent(t, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newTicketStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a ticket to a new status (open, in_progress, resolved, closed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseTicketStatus(args[1])
			if err != nil {
				return err
			}

			tickets, closer, err := openTicketStore()
			if err != nil {
				return err
			}
			defer closer()

			if err := tickets.UpdateStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Printf("ticket %s -> %s\n", args[0], status)
			return nil
		},
	}
}
