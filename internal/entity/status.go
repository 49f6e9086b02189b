package entity

import "strings"

// DonationStatus is the lifecycle state of a donation request.
type DonationStatus string

const (
	DonationPending    DonationStatus = "pending"
	DonationInProgress DonationStatus = "inprogress"
	DonationDone       DonationStatus = "done"
	DonationCancelled  DonationStatus = "cancelled"
)

// DonationStatuses lists every donation status in dashboard order.
var DonationStatuses = []DonationStatus{
	DonationPending,
	DonationInProgress,
	DonationDone,
	DonationCancelled,
}

var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:    {DonationInProgress, DonationCancelled},
	DonationInProgress: {DonationDone, DonationCancelled},
}

// ParseDonationStatus normalises raw input and reports whether it names a known status.
func ParseDonationStatus(raw string) (DonationStatus, bool) {
	s := DonationStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Valid reports whether s is one of the known donation statuses.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationPending, DonationInProgress, DonationDone, DonationCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a request in status s may move to next.
// Re-applying the current status is always allowed.
func (s DonationStatus) CanTransition(next DonationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Label is the capitalised name used by dashboards.
func (s DonationStatus) Label() string {
	switch s {
	case DonationPending:
		return "Pending"
	case DonationInProgress:
		return "Inprogress"
	case DonationDone:
		return "Done"
	case DonationCancelled:
		return "Cancelled"
	}
	return string(s)
}

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// ParseBlogStatus normalises raw input and reports whether it names a known status.
func ParseBlogStatus(raw string) (BlogStatus, bool) {
	s := BlogStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

func (s BlogStatus) Valid() bool {
	return s == BlogDraft || s == BlogPublished
}

// CanTransition allows publishing, unpublishing and re-applying the current status.
func (s BlogStatus) CanTransition(next BlogStatus) bool {
	return next.Valid()
}

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBlocked UserStatus = "blocked"
)

// ParseUserStatus normalises raw input and reports whether it names a known status.
func ParseUserStatus(raw string) (UserStatus, bool) {
	s := UserStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserBlocked
}

// Role is the single authorization tier of a user.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// ParseRole normalises raw input and reports whether it names a known role.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}
