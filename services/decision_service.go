package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
)

var (
	ErrNotResponsibleSC  = errors.New("only the responsible steering committee member may decide")
	ErrReviewsIncomplete = errors.New("all reviews must be completed before a decision")
	ErrEmptyDecision     = errors.New("a decision value is required")
)

// Common decision values; any non-empty value is stored as supplied.
const (
	DecisionAccepted = "ACCEPTED"
	DecisionRejected = "REJECTED"
)

type DecisionRepository interface {
	SubmissionWithReviews(submissionID string) (*models.Submission, error)
	ResponsibleMember(conferenceID int, committeeType string) (*models.CommitteeMember, error)
	AuthorUsers(submissionID string) ([]models.User, error)
	UpdateSubmissionStatus(submissionID, status string, decidedAt time.Time) error
}

type gormDecisionRepository struct{}

func (r *gormDecisionRepository) SubmissionWithReviews(submissionID string) (*models.Submission, error) {
	var sub models.Submission
	err := config.DB.Preload("Conference").Preload("Reviews").
		Where("submission_id = ?", submissionID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormDecisionRepository) ResponsibleMember(conferenceID int, committeeType string) (*models.CommitteeMember, error) {
	var member models.CommitteeMember
	err := config.DB.Where("conference_id = ? AND committee_type = ? AND is_responsible = ?",
		conferenceID, committeeType, true).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *gormDecisionRepository) AuthorUsers(submissionID string) ([]models.User, error) {
	var users []models.User
	err := config.DB.
		Joins("JOIN submission_authors ON submission_authors.user_id = users.user_id").
		Where("submission_authors.submission_id = ?", submissionID).
		Find(&users).Error
	return users, err
}

func (r *gormDecisionRepository) UpdateSubmissionStatus(submissionID, status string, decidedAt time.Time) error {
	return config.DB.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": decidedAt,
		}).Error
}

type DecisionService struct {
	repo DecisionRepository
	mail func(to []string, subject, body string) error
	now  func() time.Time
}

func NewDecisionService(repo DecisionRepository) *DecisionService {
	if repo == nil {
		repo = &gormDecisionRepository{}
	}
	return &DecisionService{
		repo: repo,
		mail: config.SendMail,
		now:  time.Now,
	}
}

// CanDecide reports whether a user is the responsible SC member for the
// submission's conference.
func (s *DecisionService) CanDecide(sub *models.Submission, userID int) bool {
	member, err := s.repo.ResponsibleMember(sub.ConferenceID, models.CommitteeTypeSC)
	if err != nil {
		return false
	}
	return member.UserID == userID
}

// Decide records the final decision on a submission. The caller must be
// the responsible SC member, every assigned review must be completed,
// and all authors are notified by email once the status is stored.
func (s *DecisionService) Decide(submissionID string, userID int, decision, comments string) (*models.Submission, error) {
	decision = strings.TrimSpace(decision)
	if decision == "" {
		return nil, ErrEmptyDecision
	}

	sub, err := s.repo.SubmissionWithReviews(submissionID)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	if !s.CanDecide(sub, userID) {
		return nil, ErrNotResponsibleSC
	}

	completed := 0
	for _, r := range sub.Reviews {
		if r.ReviewStatus == models.ReviewStatusCompleted {
			completed++
		}
	}
	if completed != len(sub.Reviews) {
		return nil, ErrReviewsIncomplete
	}

	decidedAt := s.now()
	if err := s.repo.UpdateSubmissionStatus(submissionID, decision, decidedAt); err != nil {
		return nil, err
	}
	sub.Status = decision
	sub.UpdatedAt = &decidedAt

	s.notifyAuthors(sub, decision, comments)
	return sub, nil
}

func (s *DecisionService) notifyAuthors(sub *models.Submission, decision, comments string) {
	users, err := s.repo.AuthorUsers(sub.SubmissionID)
	if err != nil {
		log.Printf("Failed to load authors for %s: %v", sub.SubmissionID, err)
		return
	}

	seen := make(map[string]bool)
	var recipients []string
	for _, u := range users {
		if u.Email == "" || seen[u.Email] {
			continue
		}
		seen[u.Email] = true
		recipients = append(recipients, u.Email)
	}
	if len(recipients) == 0 {
		return
	}

	subject := fmt.Sprintf("Decision on your submission to %s", sub.Conference.Name)
	body := fmt.Sprintf("Dear author,\n\nA final decision has been made on your submission.\n\nConference: %s\nTitle: %s\nSubmission ID: %s\nDecision: %s\n",
		sub.Conference.Name, sub.Title, sub.SubmissionID, decision)
	if comments != "" {
		body += fmt.Sprintf("Comments: %s\n", comments)
	}
	body += "\nBest regards,\nThe Steering Committee"

	if err := s.mail(recipients, subject, body); err != nil {
		log.Printf("Failed to send decision email for %s: %v", sub.SubmissionID, err)
	}
}
