// tiendactl tareas de operación de la base de datos del panel.
//
// Uso:
//
//	tiendactl migrate
//	tiendactl schema
//	tiendactl create-superadmin --name "Root" --email root@tienda.co --password ********
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tiendactl",
		Short:         "Operación de la base de datos del panel administrativo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSchemaCmd(), newCreateSuperadminCmd())
	return root
}
