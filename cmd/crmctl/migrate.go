package main

import (
	"fmt"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/vfg2006/crm-api/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Gerencia o schema do banco",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas as migrações pendentes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrate(func(m *migrate.Migrate) error {
			if err := migration.Up(m); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrações aplicadas")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Desfaz migrações (padrão: 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps inválido: %q", args[0])
			}
			steps = n
		}

		return withMigrate(func(m *migrate.Migrate) error {
			if err := migration.Down(m, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migração(ões) desfeita(s)\n", steps)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Mostra a versão atual do schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := migration.Files()
		if err != nil {
			return err
		}

		return withMigrate(func(m *migrate.Migrate) error {
			status, err := migration.CurrentStatus(m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !status.Applied {
				fmt.Fprintln(out, "Nenhuma migração aplicada")
			} else {
				fmt.Fprintf(out, "Versão: %d (dirty=%t)\n", status.Version, status.Dirty)
			}
			fmt.Fprintf(out, "Migrações embutidas: %d\n", len(files))
			for _, f := range files {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func withMigrate(fn func(*migrate.Migrate) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := migration.New(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
