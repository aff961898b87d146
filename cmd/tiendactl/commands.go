package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-admin/pkg/config"
	"github.com/jhoicas/tienda-admin/pkg/logger"
)

// cliActor figura como autor en el registro de acciones de lo que se hace desde la CLI.
var cliActor = entity.Actor{Name: "tiendactl", Role: entity.RoleSuperAdmin}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema (idempotente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "esquema aplicado")
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Imprime el DDL embebido sin tocar la base de datos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
			return err
		},
	}
}

type superadminOptions struct {
	name     string
	email    string
	password string
}

func newCreateSuperadminCmd() *cobra.Command {
	var opts superadminOptions

	cmd := &cobra.Command{
		Use:   "create-superadmin",
		Short: "Crea el primer superadministrador",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			id, err := createSuperadmin(ctx, postgres.NewAdminRepository(pool), postgres.NewAdminLogRepository(pool), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "superadministrador creado con id %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Nombre (obligatorio)")
	cmd.Flags().StringVar(&opts.email, "email", "", "Email de acceso (obligatorio)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Contraseña, mínimo 8 caracteres (obligatorio)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// createSuperadmin pasa por el caso de uso para aplicar las mismas reglas que la API
// (email único, longitud de contraseña) y dejar la entrada en el registro.
func createSuperadmin(ctx context.Context, admins *postgres.AdminRepo, logs *postgres.AdminLogRepo, opts superadminOptions) (int64, error) {
	log := logger.New(logger.Config{Env: "development", Level: "warn"})
	auditLog := audit.NewLogger(logs, log.Component("audit"), audit.Config{QueueSize: 4})
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = auditLog.Close(closeCtx)
	}()

	return usecase.NewAdminUseCase(admins, auditLog).Create(ctx, cliActor, dto.CreateAdminRequest{
		Name:     opts.name,
		Email:    opts.email,
		Password: opts.password,
		Role:     entity.RoleSuperAdmin,
	})
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return postgres.NewPool(ctx, cfg.DB)
}
