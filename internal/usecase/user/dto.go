package user

// CreateUserRequest represents the request payload for creating a new user.
// Fields are trimmed before validation.
type CreateUserRequest struct {
	Name     string `validate:"required"`
	Lastname string `validate:"required"`
	Email    string `validate:"required"`
}

// CreateUserResponse represents the stored user after creation.
type CreateUserResponse struct {
	ID       int64
	Name     string
	Lastname string
	Email    string
}

// UpdateUserRequest represents the request payload for updating an existing user.
// Only name and lastname are mutable.
type UpdateUserRequest struct {
	ID       int64  `validate:"gt=0"`
	Name     string `validate:"required"`
	Lastname string `validate:"required"`
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID       int64
	Name     string
	Lastname string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User
}

// ListUsersRequest represents the request payload for listing users.
type ListUsersRequest struct{}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID       int64
	Name     string
	Lastname string
	Email    string
}
