package user

// User represents a registered person in the registry.
type User struct {
	ID       int64  // ID is assigned by the registry and never changes
	Username string // Username is the display name of the user
	Age      int    // Age is the user's age in years
}
