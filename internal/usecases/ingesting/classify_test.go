package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/crm-api/internal/domain"
)

func TestClassifyReply(t *testing.T) {
	tests := []struct {
		text        string
		wantStatus  domain.ReplyStatus
		wantSummary string
	}{
		{"Please UNSUBSCRIBE me", domain.ReplyStatusNotInterested, "Lead is not interested."},
		{"Thanks, but not interested right now", domain.ReplyStatusNotInterested, "Lead is not interested."},
		{"What is the pricing for 10 seats?", domain.ReplyStatusInterested, "Lead asked about pricing."},
		{"Send me the price list", domain.ReplyStatusInterested, "Lead asked about pricing."},
		{"Can we talk next week?", domain.ReplyStatusQuestion, "Lead asked a question."},
		{"Sounds great, let's do it", domain.ReplyStatusInterested, "Lead replied positively."},
		{"", domain.ReplyStatusInterested, "Lead replied positively."},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			status, summary := classifyReply(tt.text)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantSummary, summary)
		})
	}
}
