package domain

import "time"

type ActivityType string

const (
	ActivityTypeSystem     ActivityType = "system"
	ActivityTypeSystemNote ActivityType = "system_note"
	ActivityTypeMeeting    ActivityType = "meeting"
	ActivityTypeEmailIn    ActivityType = "email_in"
)

type RelatedType string

const (
	RelatedDeal    RelatedType = "deal"
	RelatedContact RelatedType = "contact"
	RelatedCompany RelatedType = "company"
)

func (r RelatedType) Valid() bool {
	return r == RelatedDeal || r == RelatedContact || r == RelatedCompany
}

type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	RelatedType RelatedType    `json:"related_type"`
	RelatedID   string         `json:"related_id"`
	Content     *string        `json:"content"`
	Meta        map[string]any `json:"meta_json"`
	CreatedBy   *string        `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}
