package models

// Group is a named collection of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members are the user IDs belonging to the group, in the order they joined.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// MissingMembers returns the ids in userIDs that are not group members,
// in the order given.
func (g *Group) MissingMembers(userIDs ...string) []string {
	var missing []string
	for _, id := range userIDs {
		if !g.HasMember(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
