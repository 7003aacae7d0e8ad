package services

import (
	"testing"

	"conference-management-api/models"
)

func TestResolveConferenceRolePrecedence(t *testing.T) {
	conf := models.Conference{ConferenceID: 1, PresidentID: 99}

	memberships := []models.CommitteeMember{
		{ConferenceID: 1, UserID: 5, CommitteeType: models.CommitteeTypePC},
		{ConferenceID: 1, UserID: 6, CommitteeType: models.CommitteeTypeSC, IsResponsible: true},
	}
	authorships := []models.SubmissionAuthor{
		{UserID: 5, CorrespondingAuthor: true},
		{UserID: 7, CorrespondingAuthor: true},
		{UserID: 8},
	}

	cases := []struct {
		userID int
		want   string
	}{
		{99, "PRESIDENT"},
		{6, "SC_RESP"},
		{5, "PC_MEMBER"}, // committee outranks authorship
		{7, "AUTHOR_CP"},
		{8, "AUTHOR"},
		{42, "USER"},
	}
	for _, tc := range cases {
		got := ResolveConferenceRole(tc.userID, conf, memberships, authorships)
		if got.Label() != tc.want {
			t.Errorf("user %d: got %s want %s", tc.userID, got.Label(), tc.want)
		}
	}
}

func TestResolveConferenceRoleSCBeforePC(t *testing.T) {
	conf := models.Conference{ConferenceID: 3, PresidentID: 1}
	memberships := []models.CommitteeMember{
		{ConferenceID: 3, UserID: 2, CommitteeType: models.CommitteeTypePC},
		{ConferenceID: 3, UserID: 2, CommitteeType: models.CommitteeTypeSC},
	}
	got := ResolveConferenceRole(2, conf, memberships, nil)
	if got.Label() != "SC_MEMBER" {
		t.Errorf("got %s want SC_MEMBER", got.Label())
	}
	if !got.IsCommittee() {
		t.Error("committee member should report IsCommittee")
	}
}

func TestResolveConferenceRoleIgnoresOtherConferences(t *testing.T) {
	conf := models.Conference{ConferenceID: 1, PresidentID: 9}
	memberships := []models.CommitteeMember{
		{ConferenceID: 2, UserID: 4, CommitteeType: models.CommitteeTypeSC, IsResponsible: true},
	}
	got := ResolveConferenceRole(4, conf, memberships, nil)
	if got.Label() != "USER" {
		t.Errorf("membership in another conference leaked: got %s", got.Label())
	}
}
