package account

import "errors"

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid account status")
)

type Role string

const (
	RoleHomeowner    Role = "homeowner"
	RoleTradesperson Role = "tradesperson"
	RoleAdmin        Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleHomeowner, RoleTradesperson, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Status is the account lifecycle state. Parked accounts keep their data but
// receive no lead alerts and cannot buy.
type Status string

const (
	StatusActive  Status = "active"
	StatusParked  Status = "parked"
	StatusDeleted Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusParked, StatusDeleted:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
