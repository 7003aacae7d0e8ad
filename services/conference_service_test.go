package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"conference-management-api/models"

	"golang.org/x/crypto/bcrypt"
)

type fakeConferenceTx struct {
	conferences []models.Conference
	topics      []models.ConferenceTopic
	users       map[string]*models.User
	members     []models.CommitteeMember
	topicErr    error
	nextUserID  int
	nextTopicID int
}

func (f *fakeConferenceTx) CreateConference(c *models.Conference) error {
	c.ConferenceID = len(f.conferences) + 1
	f.conferences = append(f.conferences, *c)
	return nil
}

func (f *fakeConferenceTx) CreateTopic(t *models.ConferenceTopic) error {
	if f.topicErr != nil {
		return f.topicErr
	}
	f.nextTopicID++
	t.TopicID = f.nextTopicID
	f.topics = append(f.topics, *t)
	return nil
}

func (f *fakeConferenceTx) FindUserByEmail(email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("record not found")
}

func (f *fakeConferenceTx) CreateUser(u *models.User) error {
	f.nextUserID++
	u.UserID = f.nextUserID
	f.users[u.Email] = u
	return nil
}

func (f *fakeConferenceTx) CreateCommitteeMember(m *models.CommitteeMember) error {
	f.members = append(f.members, *m)
	return nil
}

type fakeConferenceRepo struct {
	tx         *fakeConferenceTx
	rolledBack bool
}

func (f *fakeConferenceRepo) InTransaction(fn func(tx ConferenceTx) error) error {
	// mimic transactional semantics: discard writes on error
	snapshot := *f.tx
	if err := fn(f.tx); err != nil {
		*f.tx = snapshot
		f.rolledBack = true
		return err
	}
	return nil
}

func validInput() CreateConferenceInput {
	start := time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC)
	return CreateConferenceInput{
		Name:               "International Conference on Testing",
		Acronym:            "ICT",
		Theme:              "Software quality",
		Type:               models.ConferenceTypeHybrid,
		Location:           "Lyon, France",
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 3),
		SubmissionDeadline: start.AddDate(0, -2, 0),
		CommitteeName:      "ICT Program Committee",
		Topics: []TopicInput{
			{Name: "Testing", Subtopics: []string{"Unit testing", "Fuzzing"}},
			{Name: "Verification"},
		},
		CommitteeMembers: []CommitteeMemberInput{
			{Email: "known@example.com", FirstName: "Known", LastName: "Member", AcademicTitle: "Prof."},
			{Email: "new@example.com", FirstName: "New", LastName: "Member", AcademicTitle: "Dr."},
		},
	}
}

func newConferenceFixture() (*fakeConferenceRepo, *ConferenceService, *[][]string) {
	tx := &fakeConferenceTx{
		users: map[string]*models.User{
			"known@example.com": {UserID: 50, Email: "known@example.com", FirstName: "Known", LastName: "Member"},
		},
		nextUserID: 100,
	}
	repo := &fakeConferenceRepo{tx: tx}
	s := NewConferenceService(repo)
	s.now = func() time.Time { return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) }
	s.tempPassword = func() string { return "temp-secret-1" }
	var sent [][]string
	s.mail = func(to []string, subject, body string) error {
		sent = append(sent, to)
		return nil
	}
	return repo, s, &sent
}

func TestCreateConferenceBootstrap(t *testing.T) {
	repo, s, sent := newConferenceFixture()

	conf, err := s.Create(7, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.ConferenceID != 1 || conf.PresidentID != 7 || conf.Status != models.ConferenceStatusOngoing {
		t.Errorf("conference not bootstrapped correctly: %+v", conf)
	}

	// 2 topics + 2 subtopics
	if len(repo.tx.topics) != 4 {
		t.Fatalf("expected 4 topic rows, got %d", len(repo.tx.topics))
	}
	subtopics := 0
	for _, topic := range repo.tx.topics {
		if topic.ParentTopicID != nil {
			subtopics++
		}
	}
	if subtopics != 2 {
		t.Errorf("expected 2 subtopics, got %d", subtopics)
	}

	if len(repo.tx.members) != 2 {
		t.Fatalf("expected 2 committee rows, got %d", len(repo.tx.members))
	}
	for _, m := range repo.tx.members {
		if m.CommitteeType != models.CommitteeTypePC {
			t.Errorf("bootstrap committee must be PC, got %s", m.CommitteeType)
		}
	}

	newUser, ok := repo.tx.users["new@example.com"]
	if !ok {
		t.Fatal("unknown email should be provisioned")
	}
	if newUser.Role != models.CommitteeTypePC {
		t.Errorf("provisioned user role = %q, want %q", newUser.Role, models.CommitteeTypePC)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newUser.Password), []byte("temp-secret-1")); err != nil {
		t.Error("provisioned password should be the bcrypt hash of the temp password")
	}

	if len(*sent) != 2 {
		t.Errorf("expected 2 invitation emails, got %d", len(*sent))
	}
}

func TestCreateConferenceRollsBackOnTopicFailure(t *testing.T) {
	repo, s, sent := newConferenceFixture()
	repo.tx.topicErr = errors.New("insert failed")

	if _, err := s.Create(7, validInput()); err == nil {
		t.Fatal("expected error")
	}
	if !repo.rolledBack {
		t.Error("transaction should roll back")
	}
	if len(repo.tx.conferences) != 0 || len(repo.tx.members) != 0 {
		t.Error("no rows should survive a failed bootstrap")
	}
	if len(*sent) != 0 {
		t.Error("no emails should be sent for a rolled-back conference")
	}
}

func TestCreateConferenceValidation(t *testing.T) {
	_, s, _ := newConferenceFixture()

	in := validInput()
	in.Name = ""
	in.Type = "Metaverse"
	in.Topics = nil
	in.CommitteeMembers[1].Email = "not-an-email"

	_, err := s.Create(7, in)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"name", "type", "topics", "committeeMembers[1].email"} {
		if _, ok := verrs[field]; !ok {
			t.Errorf("missing validation error for %s", field)
		}
	}
	if !strings.Contains(verrs.Error(), "name") {
		t.Error("Error() should mention failing fields")
	}
}

func TestValidateDeadlineAfterStart(t *testing.T) {
	in := validInput()
	in.SubmissionDeadline = in.StartDate.AddDate(0, 0, 1)
	errs := in.Validate()
	if _, ok := errs["submissionDeadline"]; !ok {
		t.Error("deadline after start date should be rejected")
	}
}
