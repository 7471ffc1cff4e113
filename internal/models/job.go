package models

import "time"

type PostingStatus string

const (
	PostingStatusOpen   PostingStatus = "Open"
	PostingStatusClosed PostingStatus = "Closed"
	PostingStatusDraft  PostingStatus = "Draft"
)

// JobPosting is owned by the company user that created it; CompanyID references users.id.
type JobPosting struct {
	ID             int64         `db:"id" json:"id"`
	CompanyID      int64         `db:"company_id" json:"company_id"`
	Title          string        `db:"title" json:"title"`
	Description    string        `db:"description" json:"description"`
	RequiredSkills string        `db:"required_skills" json:"required_skills"`
	Experience     string        `db:"experience" json:"experience"`
	Status         PostingStatus `db:"status" json:"status"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
}
