package services

import (
	"conference-management-api/models"
)

// RoleKind ranks what a user is within one conference.
type RoleKind int

const (
	RoleNone RoleKind = iota
	RoleAuthor
	RoleCorrespondingAuthor
	RoleCommitteeMember
	RoleCommitteeResponsible
	RolePresident
)

// ConferenceRole is a user's strongest role in a single conference.
type ConferenceRole struct {
	Kind          RoleKind
	CommitteeType string // PC or SC, set for committee kinds only
}

// Label renders the role the way dashboards display it.
func (r ConferenceRole) Label() string {
	switch r.Kind {
	case RolePresident:
		return "PRESIDENT"
	case RoleCommitteeResponsible:
		return r.CommitteeType + "_RESP"
	case RoleCommitteeMember:
		return r.CommitteeType + "_MEMBER"
	case RoleCorrespondingAuthor:
		return "AUTHOR_CP"
	case RoleAuthor:
		return "AUTHOR"
	default:
		return "USER"
	}
}

// IsCommittee reports whether the role grants reviewer-side access.
func (r ConferenceRole) IsCommittee() bool {
	return r.Kind == RoleCommitteeMember || r.Kind == RoleCommitteeResponsible
}

// ResolveConferenceRole computes the strongest role a user holds in a
// conference. Precedence: president, then responsible committee member,
// then committee member (SC before PC at equal rank), then corresponding
// author, then co-author.
func ResolveConferenceRole(userID int, conf models.Conference, memberships []models.CommitteeMember, authorships []models.SubmissionAuthor) ConferenceRole {
	if conf.PresidentID == userID {
		return ConferenceRole{Kind: RolePresident}
	}

	best := ConferenceRole{Kind: RoleNone}
	for _, m := range memberships {
		if m.UserID != userID || m.ConferenceID != conf.ConferenceID {
			continue
		}
		kind := RoleCommitteeMember
		if m.IsResponsible {
			kind = RoleCommitteeResponsible
		}
		if kind > best.Kind {
			best = ConferenceRole{Kind: kind, CommitteeType: m.CommitteeType}
		} else if kind == best.Kind && m.CommitteeType == models.CommitteeTypeSC && best.CommitteeType == models.CommitteeTypePC {
			best.CommitteeType = models.CommitteeTypeSC
		}
	}
	if best.Kind != RoleNone {
		return best
	}

	for _, a := range authorships {
		if a.UserID != userID {
			continue
		}
		if a.CorrespondingAuthor {
			return ConferenceRole{Kind: RoleCorrespondingAuthor}
		}
		best = ConferenceRole{Kind: RoleAuthor}
	}
	return best
}
