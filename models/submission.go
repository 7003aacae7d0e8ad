package models

import "time"

const (
	SubmissionStatusSubmitted         = "SUBMITTED"
	SubmissionStatusRevisionSubmitted = "REVISION_SUBMITTED"
)

type Submission struct {
	SubmissionID   string     `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	ConferenceID   int        `gorm:"column:conference_id" json:"conference_id"`
	Title          string     `gorm:"column:title" json:"title"`
	DocumentPath   *string    `gorm:"column:document_path" json:"document_path,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	SubmissionDate time.Time  `gorm:"column:submission_date" json:"submission_date"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Conference Conference         `gorm:"foreignKey:ConferenceID" json:"conference,omitempty"`
	Authors    []SubmissionAuthor `gorm:"foreignKey:SubmissionID" json:"authors,omitempty"`
	Reviews    []Review           `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
}

type SubmissionAuthor struct {
	ID                  int       `gorm:"primaryKey;column:id" json:"id"`
	SubmissionID        string    `gorm:"column:submission_id" json:"submission_id"`
	UserID              int       `gorm:"column:user_id" json:"user_id"`
	CorrespondingAuthor bool      `gorm:"column:corresponding_author" json:"corresponding_author"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (SubmissionAuthor) TableName() string {
	return "submission_authors"
}
