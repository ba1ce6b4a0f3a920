package domain

// FieldState says what a partial update does to one nullable field.
type FieldState int

const (
	// FieldKeep leaves the stored value untouched.
	FieldKeep FieldState = iota
	// FieldClear removes the stored value.
	FieldClear
	// FieldSet replaces the stored value.
	FieldSet
)

// OptionalUpdate is a three-way directive for a nullable field. A plain
// pointer cannot express it: absent and null both decode to nil. The zero
// value keeps the stored value.
type OptionalUpdate struct {
	State FieldState
	Value string // meaningful only when State == FieldSet
}

// KeepField leaves the field untouched.
func KeepField() OptionalUpdate { return OptionalUpdate{State: FieldKeep} }

// ClearField removes the field's value.
func ClearField() OptionalUpdate { return OptionalUpdate{State: FieldClear} }

// SetField replaces the field's value with v.
func SetField(v string) OptionalUpdate { return OptionalUpdate{State: FieldSet, Value: v} }

// UserUpdate captures a partial update to a user. Username is two-state: nil
// keeps the current value, and usernames cannot be cleared. Applying an empty
// UserUpdate still refreshes the user's UpdatedAt.
type UserUpdate struct {
	Username  *string
	FirstName OptionalUpdate
	LastName  OptionalUpdate
}
