package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Role is the user's access level as numbered by the remote service.
type Role int

const (
	RoleUser  Role = 1
	RoleAdmin Role = 2
)

// Label renders the role the way the user list shows it.
func (r Role) Label() string {
	if r == RoleUser {
		return "User"
	}
	return "Admin"
}

// Status is the account state. The numbering (1=Inactive, 2=Active) is the
// remote service's and is kept as is.
type Status int

const (
	StatusInactive Status = 1
	StatusActive   Status = 2
)

// Label renders the status the way the user list shows it.
func (s Status) Label() string {
	if s == StatusInactive {
		return "Inactive"
	}
	return "Active"
}

// ID is a numeric identifier issued by the remote service. It decodes from
// either a JSON number or a quoted number.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	n, err := decodeInt(b)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n)
	return nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (r *Role) UnmarshalJSON(b []byte) error {
	n, err := decodeInt(b)
	if err != nil {
		return fmt.Errorf("roleId: %w", err)
	}
	*r = Role(n)
	return nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	n, err := decodeInt(b)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}
	*s = Status(n)
	return nil
}

func decodeInt(b []byte) (int64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		if s == "" {
			return 0, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return 0, err
	}
	return n.Int64()
}

// User is a single user record as known to the console.
// Password is write-only: it is sent when present and never rendered.
type User struct {
	UserID   ID     `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password,omitempty"`
	RoleID   Role   `json:"roleId"`
	Status   Status `json:"status"`
	StateID  ID     `json:"stateId"`
	CityID   ID     `json:"cityId"`
}

// UserEdit carries the fields an operator may change on an existing record.
type UserEdit struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Mobile  string `json:"mobile"  validate:"required,mobile"`
	RoleID  Role   `json:"roleId"  validate:"required,oneof=1 2"`
	Status  Status `json:"status"  validate:"required,oneof=1 2"`
	StateID ID     `json:"stateId" validate:"required"`
	CityID  ID     `json:"cityId"  validate:"required"`
}

// Apply merges the edited fields over u and returns the merged copy.
// UserID and Password are carried over from u unchanged.
func (e UserEdit) Apply(u User) User {
	u.Name = e.Name
	u.Email = e.Email
	u.Mobile = e.Mobile
	u.RoleID = e.RoleID
	u.Status = e.Status
	u.StateID = e.StateID
	u.CityID = e.CityID
	return u
}

// Registration is the payload for self-registration.
type Registration struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Mobile   string `json:"mobile"   validate:"required,mobile"`
	Password string `json:"password" validate:"required,min=6"`
	StateID  ID     `json:"stateId"  validate:"required"`
	CityID   ID     `json:"cityId"   validate:"required"`
}

// Credentials is what an operator types into the login form.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the signed-in operator, kept server-side for the cookie's lifetime.
type Session struct {
	ID   string          `json:"id"`
	User json.RawMessage `json:"user,omitempty"`
	Name string          `json:"name"`
}
