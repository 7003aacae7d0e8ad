package models

import (
	"time"
)

const (
	ConferenceTypePhysical = "Physical"
	ConferenceTypeVirtual  = "Virtual"
	ConferenceTypeHybrid   = "Hybrid"

	ConferenceStatusOngoing = "Ongoing"
)

type Conference struct {
	ConferenceID       int        `gorm:"primaryKey;column:conference_id" json:"conference_id"`
	Name               string     `gorm:"column:name" json:"name"`
	Acronym            string     `gorm:"column:acronym" json:"acronym"`
	Theme              string     `gorm:"column:theme" json:"theme"`
	Type               string     `gorm:"column:type" json:"type"` // Physical|Virtual|Hybrid
	Website            *string    `gorm:"column:website" json:"website,omitempty"`
	StartDate          time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate            time.Time  `gorm:"column:end_date" json:"end_date"`
	Location           string     `gorm:"column:location" json:"location"`
	SubmissionDeadline time.Time  `gorm:"column:submission_deadline" json:"submission_deadline"`
	ExtensionDate      *time.Time `gorm:"column:extension_date" json:"extension_date,omitempty"`
	PresidentID        int        `gorm:"column:president_id" json:"president_id"`
	Status             string     `gorm:"column:status" json:"status"`
	CreationDate       time.Time  `gorm:"column:creation_date" json:"creation_date"`

	// Relations
	President User              `gorm:"foreignKey:PresidentID" json:"president,omitempty"`
	Topics    []ConferenceTopic `gorm:"foreignKey:ConferenceID" json:"topics,omitempty"`
}

type ConferenceTopic struct {
	TopicID       int    `gorm:"primaryKey;column:topic_id" json:"topic_id"`
	ConferenceID  int    `gorm:"column:conference_id" json:"conference_id"`
	TopicName     string `gorm:"column:topic_name" json:"topic_name"`
	ParentTopicID *int   `gorm:"column:parent_topic_id" json:"parent_topic_id,omitempty"`
}

// IsValidType reports whether t is one of the supported conference types.
func IsValidConferenceType(t string) bool {
	return t == ConferenceTypePhysical || t == ConferenceTypeVirtual || t == ConferenceTypeHybrid
}

// EffectiveDeadline is the submission deadline, overridden by the
// extension date when one is set and later.
func (c *Conference) EffectiveDeadline() time.Time {
	if c.ExtensionDate != nil && c.ExtensionDate.After(c.SubmissionDeadline) {
		return *c.ExtensionDate
	}
	return c.SubmissionDeadline
}

// TableName overrides
func (Conference) TableName() string {
	return "conferences"
}

func (ConferenceTopic) TableName() string {
	return "conference_topics"
}
