package services

import (
	"errors"
	"testing"
	"time"

	"conference-management-api/models"
)

type fakeDecisionRepo struct {
	sub         *models.Submission
	responsible *models.CommitteeMember
	authors     []models.User
	updated     string
}

func (f *fakeDecisionRepo) SubmissionWithReviews(submissionID string) (*models.Submission, error) {
	if f.sub == nil || f.sub.SubmissionID != submissionID {
		return nil, errors.New("record not found")
	}
	return f.sub, nil
}

func (f *fakeDecisionRepo) ResponsibleMember(conferenceID int, committeeType string) (*models.CommitteeMember, error) {
	if f.responsible == nil || f.responsible.ConferenceID != conferenceID {
		return nil, errors.New("record not found")
	}
	return f.responsible, nil
}

func (f *fakeDecisionRepo) AuthorUsers(submissionID string) ([]models.User, error) {
	return f.authors, nil
}

func (f *fakeDecisionRepo) UpdateSubmissionStatus(submissionID, status string, decidedAt time.Time) error {
	f.updated = status
	return nil
}

func newDecisionFixture() *fakeDecisionRepo {
	return &fakeDecisionRepo{
		sub: &models.Submission{
			SubmissionID: "SUB-001",
			ConferenceID: 1,
			Title:        "A Paper",
			Status:       models.SubmissionStatusSubmitted,
			Conference:   models.Conference{ConferenceID: 1, Name: "Test Conference"},
			Reviews: []models.Review{
				{ReviewID: 1, ReviewStatus: models.ReviewStatusCompleted},
				{ReviewID: 2, ReviewStatus: models.ReviewStatusCompleted},
			},
		},
		responsible: &models.CommitteeMember{ConferenceID: 1, UserID: 10, CommitteeType: models.CommitteeTypeSC, IsResponsible: true},
		authors: []models.User{
			{UserID: 1, Email: "cp@example.com"},
			{UserID: 2, Email: "co@example.com"},
			{UserID: 3, Email: "co@example.com"}, // duplicate address
		},
	}
}

func testDecisionService(repo DecisionRepository, sent *[][]string) *DecisionService {
	s := NewDecisionService(repo)
	s.now = func() time.Time { return time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) }
	s.mail = func(to []string, subject, body string) error {
		if sent != nil {
			*sent = append(*sent, to)
		}
		return nil
	}
	return s
}

func TestDecideAccept(t *testing.T) {
	repo := newDecisionFixture()
	var sent [][]string
	s := testDecisionService(repo, &sent)

	sub, err := s.Decide("SUB-001", 10, DecisionAccepted, "Strong contribution")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != DecisionAccepted || repo.updated != DecisionAccepted {
		t.Errorf("status not updated: %s / %s", sub.Status, repo.updated)
	}
	if len(sent) != 1 {
		t.Fatalf("expected one email batch, got %d", len(sent))
	}
	if len(sent[0]) != 2 {
		t.Errorf("duplicate recipients should be collapsed, got %v", sent[0])
	}
}

func TestDecideRequiresResponsibleSC(t *testing.T) {
	repo := newDecisionFixture()
	s := testDecisionService(repo, nil)

	if _, err := s.Decide("SUB-001", 11, "REJECTED", ""); !errors.Is(err, ErrNotResponsibleSC) {
		t.Errorf("got %v, want ErrNotResponsibleSC", err)
	}
	if repo.updated != "" {
		t.Error("status must not change on unauthorized decision")
	}
}

func TestDecideReviewsIncomplete(t *testing.T) {
	repo := newDecisionFixture()
	repo.sub.Reviews[1].ReviewStatus = models.ReviewStatusPending
	s := testDecisionService(repo, nil)

	if _, err := s.Decide("SUB-001", 10, "ACCEPTED", ""); !errors.Is(err, ErrReviewsIncomplete) {
		t.Errorf("got %v, want ErrReviewsIncomplete", err)
	}
}

func TestDecideNoReviewsSatisfiesGuard(t *testing.T) {
	repo := newDecisionFixture()
	repo.sub.Reviews = nil
	s := testDecisionService(repo, nil)

	if _, err := s.Decide("SUB-001", 10, DecisionAccepted, ""); err != nil {
		t.Errorf("zero reviews satisfies completed==total, got %v", err)
	}
	if repo.updated != DecisionAccepted {
		t.Errorf("status not updated, got %q", repo.updated)
	}
}

func TestDecideFreeFormValueStoredVerbatim(t *testing.T) {
	repo := newDecisionFixture()
	s := testDecisionService(repo, nil)

	sub, err := s.Decide("SUB-001", 10, "MAJOR_REVISION", "")
	if err != nil {
		t.Fatalf("free-form decision rejected: %v", err)
	}
	if sub.Status != "MAJOR_REVISION" || repo.updated != "MAJOR_REVISION" {
		t.Errorf("decision should be stored as supplied, got %s / %s", sub.Status, repo.updated)
	}
}

func TestDecideEmptyDecision(t *testing.T) {
	repo := newDecisionFixture()
	s := testDecisionService(repo, nil)

	if _, err := s.Decide("SUB-001", 10, "   ", ""); !errors.Is(err, ErrEmptyDecision) {
		t.Errorf("got %v, want ErrEmptyDecision", err)
	}
	if repo.updated != "" {
		t.Error("status must not change on an empty decision")
	}
}

func TestDecideUnknownSubmission(t *testing.T) {
	repo := newDecisionFixture()
	s := testDecisionService(repo, nil)

	if _, err := s.Decide("SUB-404", 10, "ACCEPTED", ""); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("got %v, want ErrSubmissionNotFound", err)
	}
}
