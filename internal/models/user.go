package models

import (
	"fmt"
	"time"
)

type UserType string

const (
	UserTypeCandidate  UserType = "candidate"
	UserTypeCompany    UserType = "company"
	UserTypeFreelancer UserType = "freelancer"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeCandidate, UserTypeCompany, UserTypeFreelancer:
		return true
	}
	return false
}

func ParseUserType(s string) (UserType, error) {
	t := UserType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown user type %q", s)
	}
	return t, nil
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	UserType     UserType  `db:"user_type" json:"user_type"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
