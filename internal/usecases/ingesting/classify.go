package ingesting

import (
	"strings"

	"github.com/vfg2006/crm-api/internal/domain"
)

// classifyReply aplica as regras simples de intenção sobre o texto da resposta
func classifyReply(text string) (domain.ReplyStatus, string) {
	text = strings.ToLower(text)

	switch {
	case strings.Contains(text, "unsubscribe"), strings.Contains(text, "not interested"):
		return domain.ReplyStatusNotInterested, "Lead is not interested."
	case strings.Contains(text, "price"), strings.Contains(text, "pricing"):
		return domain.ReplyStatusInterested, "Lead asked about pricing."
	case strings.Contains(text, "?"):
		return domain.ReplyStatusQuestion, "Lead asked a question."
	default:
		return domain.ReplyStatusInterested, "Lead replied positively."
	}
}
