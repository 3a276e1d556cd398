package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Username string
	Age      int
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Both fields are replaced; there is no partial update.
type UpdateUserRequest struct {
	ID       int64
	Username string
	Age      int
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	Username string
	Age      int
}
