package models

import "time"

const (
	CommitteeTypePC = "PC" // Program Committee
	CommitteeTypeSC = "SC" // Steering Committee
)

type CommitteeMember struct {
	MemberID       int       `gorm:"primaryKey;column:member_id" json:"member_id"`
	ConferenceID   int       `gorm:"column:conference_id" json:"conference_id"`
	UserID         int       `gorm:"column:user_id" json:"user_id"`
	CommitteeType  string    `gorm:"column:committee_type" json:"committee_type"` // PC|SC
	CommitteeName  string    `gorm:"column:committee_name" json:"committee_name"`
	IsResponsible  bool      `gorm:"column:is_responsible" json:"is_responsible"`
	AcademicTitle  string    `gorm:"column:academic_title" json:"academic_title"`
	ExpertiseAreas string    `gorm:"column:expertise_areas" json:"expertise_areas"`
	Biography      string    `gorm:"column:biography" json:"biography"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func IsValidCommitteeType(t string) bool {
	return t == CommitteeTypePC || t == CommitteeTypeSC
}

func (CommitteeMember) TableName() string {
	return "committee_members"
}
