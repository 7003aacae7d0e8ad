package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
	"conference-management-api/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TopicInput struct {
	Name      string   `json:"name"`
	Subtopics []string `json:"subtopics"`
}

type CommitteeMemberInput struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	AcademicTitle  string `json:"academic_title"`
	ExpertiseAreas string `json:"expertise_areas"`
}

type CreateConferenceInput struct {
	Name               string                 `json:"name"`
	Acronym            string                 `json:"acronym"`
	Theme              string                 `json:"theme"`
	Type               string                 `json:"type"`
	Website            string                 `json:"website"`
	Location           string                 `json:"location"`
	StartDate          time.Time              `json:"start_date"`
	EndDate            time.Time              `json:"end_date"`
	SubmissionDeadline time.Time              `json:"submission_deadline"`
	CommitteeName      string                 `json:"committee_name"`
	Topics             []TopicInput           `json:"topics"`
	CommitteeMembers   []CommitteeMemberInput `json:"committee_members"`
}

// ValidationErrors maps a field name to its first problem.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Validate checks a creation request field by field.
func (in *CreateConferenceInput) Validate() ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "Conference name is required"
	}
	if strings.TrimSpace(in.Acronym) == "" {
		errs["acronym"] = "Acronym is required"
	}
	if strings.TrimSpace(in.Theme) == "" {
		errs["theme"] = "Theme is required"
	}
	if !models.IsValidConferenceType(in.Type) {
		errs["type"] = "Type must be Physical, Virtual or Hybrid"
	}
	if strings.TrimSpace(in.Location) == "" {
		errs["location"] = "Location is required"
	}
	if in.Website != "" && !utils.ValidateURL(in.Website) {
		errs["website"] = "Website must be a valid URL"
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		errs["dates"] = "Start and end dates are required"
	} else if in.EndDate.Before(in.StartDate) {
		errs["dates"] = "End date must not be before start date"
	}
	if in.SubmissionDeadline.IsZero() {
		errs["submissionDeadline"] = "Submission deadline is required"
	} else if !in.StartDate.IsZero() && in.SubmissionDeadline.After(in.StartDate) {
		errs["submissionDeadline"] = "Submission deadline must be before the conference starts"
	}
	if len(in.Topics) == 0 {
		errs["topics"] = "At least one topic is required"
	}
	if strings.TrimSpace(in.CommitteeName) == "" {
		errs["committeeName"] = "Committee name is required"
	}
	if len(in.CommitteeMembers) == 0 {
		errs["committeeMembers"] = "At least one committee member is required"
	}
	for i, m := range in.CommitteeMembers {
		if !utils.ValidateEmail(m.Email) {
			errs[fmt.Sprintf("committeeMembers[%d].email", i)] = "Invalid email format"
		}
		if strings.TrimSpace(m.FirstName) == "" || strings.TrimSpace(m.LastName) == "" {
			errs[fmt.Sprintf("committeeMembers[%d].name", i)] = "First and last name are required"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ConferenceTx groups the writes a conference bootstrap performs
// inside one database transaction.
type ConferenceTx interface {
	CreateConference(c *models.Conference) error
	CreateTopic(t *models.ConferenceTopic) error
	FindUserByEmail(email string) (*models.User, error)
	CreateUser(u *models.User) error
	CreateCommitteeMember(m *models.CommitteeMember) error
}

type ConferenceRepository interface {
	InTransaction(fn func(tx ConferenceTx) error) error
}

type gormConferenceTx struct {
	tx *gorm.DB
}

func (g *gormConferenceTx) CreateConference(c *models.Conference) error {
	return g.tx.Create(c).Error
}

func (g *gormConferenceTx) CreateTopic(t *models.ConferenceTopic) error {
	return g.tx.Create(t).Error
}

func (g *gormConferenceTx) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := g.tx.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (g *gormConferenceTx) CreateUser(u *models.User) error {
	return g.tx.Create(u).Error
}

func (g *gormConferenceTx) CreateCommitteeMember(m *models.CommitteeMember) error {
	return g.tx.Create(m).Error
}

type gormConferenceRepository struct{}

func (r *gormConferenceRepository) InTransaction(fn func(tx ConferenceTx) error) error {
	return config.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&gormConferenceTx{tx: tx})
	})
}

type provisionedMember struct {
	user         models.User
	tempPassword string // empty for existing accounts
}

type ConferenceService struct {
	repo         ConferenceRepository
	mail         func(to []string, subject, body string) error
	now          func() time.Time
	tempPassword func() string
}

func NewConferenceService(repo ConferenceRepository) *ConferenceService {
	if repo == nil {
		repo = &gormConferenceRepository{}
	}
	return &ConferenceService{
		repo:         repo,
		mail:         config.SendMail,
		now:          time.Now,
		tempPassword: func() string { return uuid.New().String()[:12] },
	}
}

// Create bootstraps a conference with its topics and program committee
// in a single transaction. Unknown committee emails get a provisioned
// account with a temporary password. Notification emails go out only
// after the transaction commits.
func (s *ConferenceService) Create(presidentID int, in CreateConferenceInput) (*models.Conference, error) {
	if errs := in.Validate(); errs != nil {
		return nil, errs
	}

	now := s.now()
	conf := &models.Conference{
		Name:               utils.SanitizeInput(in.Name),
		Acronym:            utils.SanitizeInput(in.Acronym),
		Theme:              utils.SanitizeInput(in.Theme),
		Type:               in.Type,
		Location:           utils.SanitizeInput(in.Location),
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		SubmissionDeadline: in.SubmissionDeadline,
		PresidentID:        presidentID,
		Status:             models.ConferenceStatusOngoing,
		CreationDate:       now,
	}
	if in.Website != "" {
		website := in.Website
		conf.Website = &website
	}

	var provisioned []provisionedMember
	err := s.repo.InTransaction(func(tx ConferenceTx) error {
		if err := tx.CreateConference(conf); err != nil {
			return err
		}

		for _, t := range in.Topics {
			topic := models.ConferenceTopic{
				ConferenceID: conf.ConferenceID,
				TopicName:    utils.SanitizeInput(t.Name),
			}
			if err := tx.CreateTopic(&topic); err != nil {
				return err
			}
			for _, sub := range t.Subtopics {
				parentID := topic.TopicID
				child := models.ConferenceTopic{
					ConferenceID:  conf.ConferenceID,
					TopicName:     utils.SanitizeInput(sub),
					ParentTopicID: &parentID,
				}
				if err := tx.CreateTopic(&child); err != nil {
					return err
				}
			}
		}

		for _, m := range in.CommitteeMembers {
			member, err := s.ensureUser(tx, m, now)
			if err != nil {
				return err
			}
			row := models.CommitteeMember{
				ConferenceID:   conf.ConferenceID,
				UserID:         member.user.UserID,
				CommitteeType:  models.CommitteeTypePC,
				CommitteeName:  utils.SanitizeInput(in.CommitteeName),
				AcademicTitle:  utils.SanitizeInput(m.AcademicTitle),
				ExpertiseAreas: utils.SanitizeInput(m.ExpertiseAreas),
				CreatedAt:      now,
			}
			if err := tx.CreateCommitteeMember(&row); err != nil {
				return err
			}
			provisioned = append(provisioned, member)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range provisioned {
		s.sendCommitteeInvite(conf, p)
	}
	return conf, nil
}

func (s *ConferenceService) ensureUser(tx ConferenceTx, in CommitteeMemberInput, now time.Time) (provisionedMember, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := tx.FindUserByEmail(email); err == nil {
		return provisionedMember{user: *existing}, nil
	}

	tempPassword := s.tempPassword()
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return provisionedMember{}, err
	}

	// Accounts provisioned through a bootstrap join as committee members
	user := models.User{
		FirstName: utils.SanitizeInput(in.FirstName),
		LastName:  utils.SanitizeInput(in.LastName),
		Email:     email,
		Password:  string(hashed),
		Role:      models.CommitteeTypePC,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := tx.CreateUser(&user); err != nil {
		return provisionedMember{}, err
	}
	return provisionedMember{user: user, tempPassword: tempPassword}, nil
}

func (s *ConferenceService) sendCommitteeInvite(conf *models.Conference, p provisionedMember) {
	subject := fmt.Sprintf("Program committee invitation: %s", conf.Name)
	body := fmt.Sprintf("Dear %s %s,\n\nYou have been added to the program committee of %s (%s).\n",
		p.user.FirstName, p.user.LastName, conf.Name, conf.Acronym)
	if p.tempPassword != "" {
		body += fmt.Sprintf("\nAn account has been created for you.\nLogin: %s\nTemporary password: %s\nPlease change it after your first login.\n",
			p.user.Email, p.tempPassword)
	}
	body += "\nBest regards,\nThe Conference Management Team"

	if err := s.mail([]string{p.user.Email}, subject, body); err != nil {
		log.Printf("Failed to send committee invite to %s: %v", p.user.Email, err)
	}
}
