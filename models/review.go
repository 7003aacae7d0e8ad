package models

import "time"

const (
	ReviewStatusPending   = "PENDING"
	ReviewStatusCompleted = "COMPLETED"
)

type Review struct {
	ReviewID       int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID   string     `gorm:"column:submission_id" json:"submission_id"`
	ReviewerID     int        `gorm:"column:reviewer_id" json:"reviewer_id"`
	CommitteeType  string     `gorm:"column:committee_type" json:"committee_type"` // PC|SC
	ReviewStatus   string     `gorm:"column:review_status" json:"review_status"`
	ReviewDecision *string    `gorm:"column:review_decision" json:"review_decision,omitempty"`
	ReviewComments *string    `gorm:"column:review_comments" json:"review_comments,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Reviewer User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
