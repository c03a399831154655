package domain

import "time"

type ReplyStatus string

const (
	ReplyStatusInterested    ReplyStatus = "interested"
	ReplyStatusNotInterested ReplyStatus = "not_interested"
	ReplyStatusQuestion      ReplyStatus = "question"
)

func (s ReplyStatus) Valid() bool {
	switch s {
	case ReplyStatusInterested, ReplyStatusNotInterested, ReplyStatusQuestion:
		return true
	}
	return false
}

const DefaultLifecycleStage = "lead"

type Contact struct {
	ID             string     `json:"id"`
	Email          *string    `json:"email"`
	FullName       *string    `json:"full_name"`
	Title          *string    `json:"title"`
	CompanyID      *string    `json:"company_id"`
	OwnerID        *string    `json:"owner_id"`
	LifecycleStage *string    `json:"lifecycle_stage"`
	ReplyStatus    *string    `json:"reply_status"`
	ReplySummary   *string    `json:"reply_summary"`
	Website        *string    `json:"website"`
	LinkedinURL    *string    `json:"linkedin_url"`
	Phone          *string    `json:"phone"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LatestEmailAt  *time.Time `json:"latest_email_sent_at"`
}

type NewContact struct {
	Email          string  `json:"email" validate:"required,email"`
	FullName       *string `json:"full_name"`
	Title          *string `json:"title"`
	CompanyID      *string `json:"company_id"`
	OwnerID        *string `json:"owner_id"`
	LifecycleStage string  `json:"lifecycle_stage"`
	Website        *string `json:"website"`
	LinkedinURL    *string `json:"linkedin_url"`
	Phone          *string `json:"phone"`
}

// ContactUpsert é usado pelos webhooks: campos nil nunca sobrescrevem valores existentes
type ContactUpsert struct {
	Email       string
	FullName    *string
	Website     *string
	LinkedinURL *string
}

var ContactUpdatableFields = []string{
	"full_name", "title", "company_id", "owner_id", "lifecycle_stage",
	"reply_status", "reply_summary", "website", "linkedin_url", "phone",
}
