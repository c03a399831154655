package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/infrastructure/migration"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Cria o pipeline padrão e seus estágios",
	Long: `Cria pipelines e estágios a partir de um YAML. Sem --file usa o seed embutido
(pipeline Sales com New, Contacted, Qualified, Meeting Scheduled, Proposal, Won e Lost).
Pode ser executado várias vezes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var raw []byte
		if file != "" {
			var err error
			if raw, err = os.ReadFile(file); err != nil {
				return err
			}
		}

		data, err := migration.ParseSeed(raw)
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conn, err := postgres.NewConnection(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()

		result, err := migration.Seed(cmd.Context(), conn, data)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seed concluído: %d pipeline(s) criado(s), %d estágio(s) processado(s)\n", result.Pipelines, result.Stages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringP("file", "f", "", "YAML com pipelines e estágios")
}
