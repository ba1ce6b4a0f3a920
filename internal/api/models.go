package api

import (
	"encoding/json"
	"time"

	"github.com/rburris/roster-api/internal/domain"
)

// Common request/response structures

// UserResponse defines the wire representation of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// usersToResponse converts a slice of users, keeping an empty slice empty so
// the listing serializes as [] rather than null.
func usersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, userToResponse(&users[i]))
	}
	return responses
}

// NullableString distinguishes the three states a PATCH field can take on
// the wire: absent (keep), explicit null (clear), and a string value (set).
// The zero value means absent; UnmarshalJSON only runs when the key is
// present.
type NullableString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Present = true
	if string(data) == "null" {
		ns.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ns.Value = &s
	return nil
}

// toDirective translates the wire state into an update directive.
func (ns NullableString) toDirective() domain.OptionalUpdate {
	switch {
	case !ns.Present:
		return domain.KeepField()
	case ns.Value == nil:
		return domain.ClearField()
	default:
		return domain.SetField(*ns.Value)
	}
}

// UpdateUserRequest defines the payload for the user update endpoint.
// Username stays a plain pointer: a username cannot be cleared, so null and
// absent both mean keep.
type UpdateUserRequest struct {
	Username  *string        `json:"username"`
	FirstName NullableString `json:"first_name"`
	LastName  NullableString `json:"last_name"`
}

// ToUpdate converts the request into the domain update directive.
func (r UpdateUserRequest) ToUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Username:  r.Username,
		FirstName: r.FirstName.toDirective(),
		LastName:  r.LastName.toDirective(),
	}
}
