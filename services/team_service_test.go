package services

import (
	"errors"
	"testing"
	"time"

	"conference-management-api/models"
)

type fakeTeamRepo struct {
	sub       *models.Submission
	users     map[int]*models.User
	removed   []int
	removeErr error
}

func (f *fakeTeamRepo) SubmissionWithAuthors(submissionID string) (*models.Submission, error) {
	if f.sub == nil || f.sub.SubmissionID != submissionID {
		return nil, errors.New("record not found")
	}
	return f.sub, nil
}

func (f *fakeTeamRepo) RemoveAuthor(submissionID string, userID int) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, userID)
	return nil
}

func (f *fakeTeamRepo) UserByID(userID int) (*models.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func newTeamFixture(deadline time.Time) *fakeTeamRepo {
	return &fakeTeamRepo{
		sub: &models.Submission{
			SubmissionID: "SUB-001",
			Title:        "A Paper",
			Conference: models.Conference{
				ConferenceID:       1,
				Name:               "Test Conference",
				SubmissionDeadline: deadline,
			},
			Authors: []models.SubmissionAuthor{
				{SubmissionID: "SUB-001", UserID: 1, CorrespondingAuthor: true},
				{SubmissionID: "SUB-001", UserID: 2},
			},
		},
		users: map[int]*models.User{
			2: {UserID: 2, FirstName: "Co", LastName: "Author", Email: "co@example.com"},
		},
	}
}

func testTeamService(repo TeamRepository, now time.Time, sent *[]string) *TeamService {
	s := NewTeamService(repo)
	s.now = func() time.Time { return now }
	s.mail = func(to []string, subject, body string) error {
		if sent != nil {
			*sent = append(*sent, to...)
		}
		return nil
	}
	return s
}

func TestRemoveCoauthor(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, 7))

	var sent []string
	s := testTeamService(repo, now, &sent)

	if err := s.RemoveCoauthor("SUB-001", 1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0] != 2 {
		t.Errorf("expected user 2 removed, got %v", repo.removed)
	}
	if len(sent) != 1 || sent[0] != "co@example.com" {
		t.Errorf("expected removal email to co-author, got %v", sent)
	}
}

func TestRemoveCoauthorMailFailureIsNotFatal(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, 7))
	s := testTeamService(repo, now, nil)
	s.mail = func(to []string, subject, body string) error {
		return errors.New("smtp down")
	}

	if err := s.RemoveCoauthor("SUB-001", 1, 2); err != nil {
		t.Errorf("mail failure must not fail the removal, got %v", err)
	}
	if len(repo.removed) != 1 {
		t.Error("co-author should still be removed")
	}
}

func TestRemoveCoauthorOnlyCorresponding(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, 7))
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 2, 2); !errors.Is(err, ErrNotCorrespondingAuthor) {
		t.Errorf("got %v, want ErrNotCorrespondingAuthor", err)
	}
	if len(repo.removed) != 0 {
		t.Error("nothing should be removed")
	}
}

func TestRemoveCoauthorAtDeadlineInstant(t *testing.T) {
	now := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now) // deadline is exactly now
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 1, 2); err != nil {
		t.Errorf("removal at the deadline should succeed, got %v", err)
	}
	if len(repo.removed) != 1 {
		t.Error("co-author should be removed at the deadline instant")
	}
}

func TestRemoveCoauthorAfterDeadline(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, -1))
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 1, 2); !errors.Is(err, ErrDeadlinePassed) {
		t.Errorf("got %v, want ErrDeadlinePassed", err)
	}
}

func TestRemoveCoauthorExtensionReopensDeadline(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, -1))
	ext := now.AddDate(0, 0, 5)
	repo.sub.Conference.ExtensionDate = &ext
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 1, 2); err != nil {
		t.Errorf("extension should allow removal, got %v", err)
	}
}

func TestRemoveCoauthorCannotRemoveCorresponding(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, 7))
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 1, 1); !errors.Is(err, ErrCannotRemoveCorresponding) {
		t.Errorf("got %v, want ErrCannotRemoveCorresponding", err)
	}
}

func TestRemoveCoauthorUnknownAuthor(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newTeamFixture(now.AddDate(0, 0, 7))
	s := testTeamService(repo, now, nil)

	if err := s.RemoveCoauthor("SUB-001", 1, 99); !errors.Is(err, ErrAuthorNotFound) {
		t.Errorf("got %v, want ErrAuthorNotFound", err)
	}
}
