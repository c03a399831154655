package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/pkg/crmclient"
	"github.com/vfg2006/crm-api/pkg/utils"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Consulta e movimenta deals no quadro Kanban pela API",
}

var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Mostra os estágios e deals do pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		pipeline, _ := cmd.Flags().GetString("pipeline")
		board, err := client.Board(cmd.Context(), pipeline)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			out, err := utils.PrettyJSON(board)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		return renderBoard(cmd.OutOrStdout(), board)
	},
}

var boardMoveCmd = &cobra.Command{
	Use:   "move <deal_id> <stage_id>",
	Short: "Move um deal para outro estágio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient(cmd)
		if err != nil {
			return err
		}

		pipeline, _ := cmd.Flags().GetString("pipeline")
		board, err := client.Board(cmd.Context(), pipeline)
		if err != nil {
			return err
		}

		dealID, stageID := args[0], args[1]
		if err := board.MoveDeal(cmd.Context(), client, dealID, stageID); err != nil {
			return fmt.Errorf("falha ao mover deal %s: %w", dealID, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deal %s movido para %s\n", dealID, stageID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.AddCommand(boardShowCmd, boardMoveCmd)
	boardShowCmd.Flags().Bool("json", false, "Imprime o quadro em JSON")

	boardCmd.PersistentFlags().String("url", "", "URL base da API (padrão: http://HOST:PORT)")
	boardCmd.PersistentFlags().String("token", "", "JWT; vazio emite um token service_role com SUPABASE_JWT_SECRET")
	boardCmd.PersistentFlags().StringP("pipeline", "p", "default", "Pipeline a consultar")
}

func newAPIClient(cmd *cobra.Command) (*crmclient.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	baseURL, _ := cmd.Flags().GetString("url")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://%s:%s", cfg.Server.Host, cfg.Server.Port)
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token, err = authenticating.NewService(cfg).IssueToken("crmctl", "", domain.RoleServiceRole, 5*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("não foi possível emitir token: %w", err)
		}
	}

	return crmclient.New(baseURL, token), nil
}

func renderBoard(out io.Writer, board *crmclient.Board) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, col := range board.Columns {
		fmt.Fprintf(w, "%s (%d)\n", col.Stage.Name, len(col.Deals))
		for _, card := range col.Deals {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", card.ID, card.Title, formatAmount(card), strings.Join(names(card), " / "))
		}
	}

	return w.Flush()
}

func formatAmount(card crmclient.DealCard) string {
	if !card.Amount.Valid {
		return "-"
	}
	currency := "USD"
	if card.Currency != nil && *card.Currency != "" {
		currency = *card.Currency
	}
	return card.Amount.Decimal.StringFixed(2) + " " + currency
}

func names(card crmclient.DealCard) []string {
	out := []string{}
	for _, name := range []*string{card.CompanyName, card.ContactName} {
		if name != nil && *name != "" {
			out = append(out, *name)
		}
	}
	return out
}
