// Package user holds the user entity edited by the auth and profile screens,
// and the field validator those screens consult before calling the API.
package user

// User is the account as the API returns it.
type User struct {
	ID        string   `json:"id,omitempty"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Bio       string   `json:"bio,omitempty"`
	Avatar    string   `json:"avatar,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Password  string   `json:"password,omitempty"`
}

// Field identifies a validated field. Its string form is the title of the
// field's validation error.
type Field string

const (
	FirstName Field = "firstname"
	LastName  Field = "lastname"
	Email     Field = "email"
	Bio       Field = "bio"
	Password  Field = "password"
)

// Value returns the current value of f.
func (u User) Value(f Field) string {
	switch f {
	case FirstName:
		return u.FirstName
	case LastName:
		return u.LastName
	case Email:
		return u.Email
	case Bio:
		return u.Bio
	case Password:
		return u.Password
	default:
		return ""
	}
}

// Validate checks the current value of f.
func (u User) Validate(f Field) Result {
	return Validate(f, u.Value(f))
}

// Public returns a copy without the password, for update requests.
func (u User) Public() User {
	u.Password = ""
	return u
}
