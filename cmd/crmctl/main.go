package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfg2006/crm-api/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "Ferramentas de operação do CRM",
	Long:          `Aplica migrações, carrega o seed de pipelines e opera o quadro Kanban pela API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func loadConfig() (*config.Config, error) {
	logrus.SetLevel(logrus.WarnLevel)
	return config.NewConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
