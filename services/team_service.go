package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"conference-management-api/config"
	"conference-management-api/models"
)

var (
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrNotCorrespondingAuthor    = errors.New("only the corresponding author may manage the team")
	ErrDeadlinePassed            = errors.New("submission deadline has passed")
	ErrAuthorNotFound            = errors.New("author is not part of this submission")
	ErrCannotRemoveCorresponding = errors.New("corresponding author cannot be removed")
)

type TeamRepository interface {
	SubmissionWithAuthors(submissionID string) (*models.Submission, error)
	RemoveAuthor(submissionID string, userID int) error
	UserByID(userID int) (*models.User, error)
}

type gormTeamRepository struct{}

func (r *gormTeamRepository) SubmissionWithAuthors(submissionID string) (*models.Submission, error) {
	var sub models.Submission
	err := config.DB.Preload("Conference").Preload("Authors").
		Where("submission_id = ?", submissionID).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormTeamRepository) RemoveAuthor(submissionID string, userID int) error {
	return config.DB.Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Delete(&models.SubmissionAuthor{}).Error
}

func (r *gormTeamRepository) UserByID(userID int) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type TeamService struct {
	repo TeamRepository
	mail func(to []string, subject, body string) error
	now  func() time.Time
}

func NewTeamService(repo TeamRepository) *TeamService {
	if repo == nil {
		repo = &gormTeamRepository{}
	}
	return &TeamService{
		repo: repo,
		mail: config.SendMail,
		now:  time.Now,
	}
}

// RemoveCoauthor removes a co-author from a submission team. Only the
// corresponding author may do this, and only while the submission
// deadline (or its extension) is still open. The corresponding author
// row itself can never be removed.
func (s *TeamService) RemoveCoauthor(submissionID string, requesterID, coauthorID int) error {
	sub, err := s.repo.SubmissionWithAuthors(submissionID)
	if err != nil {
		return ErrSubmissionNotFound
	}

	var requester, target *models.SubmissionAuthor
	for i := range sub.Authors {
		a := &sub.Authors[i]
		if a.UserID == requesterID {
			requester = a
		}
		if a.UserID == coauthorID {
			target = a
		}
	}

	if requester == nil || !requester.CorrespondingAuthor {
		return ErrNotCorrespondingAuthor
	}
	// The deadline itself is still open; only strictly later is too late
	if s.now().After(sub.Conference.EffectiveDeadline()) {
		return ErrDeadlinePassed
	}
	if target == nil {
		return ErrAuthorNotFound
	}
	if target.CorrespondingAuthor {
		return ErrCannotRemoveCorresponding
	}

	if err := s.repo.RemoveAuthor(submissionID, coauthorID); err != nil {
		return err
	}

	// Notify the removed author, best effort
	if user, err := s.repo.UserByID(coauthorID); err == nil {
		subject := fmt.Sprintf("Removed from submission %s", submissionID)
		body := fmt.Sprintf("Dear %s %s,\n\nYou have been removed from the author list of submission %q for %s.\n\nBest regards,\nThe Conference Management Team",
			user.FirstName, user.LastName, sub.Title, sub.Conference.Name)
		if err := s.mail([]string{user.Email}, subject, body); err != nil {
			log.Printf("Failed to send removal email to %s: %v", user.Email, err)
		}
	}

	return nil
}
