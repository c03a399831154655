package ingesting

import "github.com/vfg2006/crm-api/internal/domain"

// Attendee é um participante de um agendamento do cal.com
type Attendee struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Booking struct {
	ID        any            `json:"id"`
	Title     string         `json:"title"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Attendees []Attendee     `json:"attendees"`
	Metadata  map[string]any `json:"metadata"`
}

// CalcomBookingPayload aceita participantes dentro de booking ou na raiz, como em integrações customizadas
type CalcomBookingPayload struct {
	Event          string     `json:"event"`
	Booking        *Booking   `json:"booking"`
	Attendees      []Attendee `json:"attendees"`
	IdempotencyKey string     `json:"idempotency_key"`
}

// attendee devolve o primeiro participante com e-mail, priorizando booking.attendees
func (p *CalcomBookingPayload) attendee() (Attendee, bool) {
	if p.Booking != nil && len(p.Booking.Attendees) > 0 && p.Booking.Attendees[0].Email != "" {
		return p.Booking.Attendees[0], true
	}
	if len(p.Attendees) > 0 && p.Attendees[0].Email != "" {
		return p.Attendees[0], true
	}
	return Attendee{}, false
}

type Lead struct {
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	Company     *string `json:"company"`
	Website     *string `json:"website"`
	LinkedinURL *string `json:"linkedin_url"`
}

type Message struct {
	Subject    *string `json:"subject"`
	Snippet    *string `json:"snippet"`
	Text       *string `json:"text"`
	ReceivedAt *string `json:"received_at"`
}

type InstantlyReplyPayload struct {
	Event          string  `json:"event"`
	CampaignID     *string `json:"campaign_id"`
	Lead           Lead    `json:"lead"`
	Message        Message `json:"message"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// CalcomResult é a resposta do webhook de agendamento
type CalcomResult struct {
	Status    string `json:"status"`
	ContactID string `json:"contact_id"`
	DealID    string `json:"deal_id"`
}

type InstantlyResult struct {
	Status           string             `json:"status"`
	IdempotencyKey   *string            `json:"idempotency_key"`
	ContactID        string             `json:"contact_id"`
	ActivityID       string             `json:"activity_id"`
	ReplyStatus      domain.ReplyStatus `json:"reply_status"`
	ReplySummary     string             `json:"reply_summary"`
	DealID           string             `json:"deal_id"`
	SystemActivityID *string            `json:"system_activity_id"`
}
