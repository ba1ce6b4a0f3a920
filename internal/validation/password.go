package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// minPasswordLength is the floor below which passwords are rejected.
const minPasswordLength = 8

// PasswordPolicy screens plaintext passwords. The service never stores them;
// a password is checked at create time and discarded. Implementations return
// a descriptive error for rejected passwords and nil otherwise.
type PasswordPolicy interface {
	Check(password string) error
}

// DefaultPasswordPolicy rejects passwords shorter than the minimum length or
// present in the bundled compromised-password set. Matching against the set
// is case-insensitive.
type DefaultPasswordPolicy struct {
	compromised map[string]struct{}
}

var _ PasswordPolicy = (*DefaultPasswordPolicy)(nil)

// NewDefaultPasswordPolicy builds the policy with the bundled set.
func NewDefaultPasswordPolicy() *DefaultPasswordPolicy {
	set := make(map[string]struct{}, len(compromisedPasswords))
	for _, p := range compromisedPasswords {
		set[p] = struct{}{}
	}
	return &DefaultPasswordPolicy{compromised: set}
}

// Check implements PasswordPolicy.
func (p *DefaultPasswordPolicy) Check(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("must be at least %d characters", minPasswordLength)
	}
	if _, found := p.compromised[strings.ToLower(password)]; found {
		return errors.New("appears in a list of compromised passwords")
	}
	return nil
}

// compromisedPasswords is a small bundled corpus of the most common breached
// passwords long enough to pass the length check. Deployments wanting real
// coverage swap in a policy backed by a full breach dataset.
var compromisedPasswords = []string{
	"password",
	"password1",
	"password123",
	"passw0rd",
	"p@ssw0rd",
	"12345678",
	"123456789",
	"1234567890",
	"qwertyuiop",
	"qwerty123",
	"1q2w3e4r",
	"iloveyou",
	"sunshine",
	"princess",
	"football",
	"baseball",
	"superman",
	"whatever",
	"trustno1",
	"letmein1",
	"welcome1",
	"admin123",
	"abc12345",
	"michael1",
	"jennifer",
	"computer",
	"starwars",
	"11111111",
	"aa123456",
	"dragon123",
}
