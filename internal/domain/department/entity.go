package department

import "time"

type Department struct {
	ID        string
	Name      string
	Code      string
	HeadID    *string
	MemberIDs []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is a member of the department.
func (d Department) HasMember(userID string) bool {
	for _, id := range d.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsHeadedBy reports whether userID is the department head.
func (d Department) IsHeadedBy(userID string) bool {
	return d.HeadID != nil && *d.HeadID == userID
}
