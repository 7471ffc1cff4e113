package auth

import "recruit-platform/internal/models"

// Flash categories
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side state bound to one browser cookie.
type Session struct {
	UserID    int64           `json:"user_id,omitempty"`
	UserEmail string          `json:"user_email,omitempty"`
	UserType  models.UserType `json:"user_type,omitempty"`
	Flashes   []Flash         `json:"flashes,omitempty"`

	modified bool
}

func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// SignIn replaces the identity with the user's id, email and role.
func (s *Session) SignIn(user *models.User) {
	s.UserID = user.ID
	s.UserEmail = user.Email
	s.UserType = user.UserType
	s.modified = true
}

// Clear drops identity and pending flashes.
func (s *Session) Clear() {
	*s = Session{modified: true}
}

func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.modified = true
}

// PopFlashes returns pending flashes and empties the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	if len(flashes) > 0 {
		s.Flashes = nil
		s.modified = true
	}
	return flashes
}

func (s *Session) Modified() bool {
	return s.modified
}

// Empty reports whether there is nothing worth persisting.
func (s *Session) Empty() bool {
	return s.UserID == 0 && len(s.Flashes) == 0
}
