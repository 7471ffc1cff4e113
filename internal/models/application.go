package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusAccepted ApplicationStatus = "Accepted"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

type Application struct {
	ID          int64             `db:"id" json:"id"`
	JobID       int64             `db:"job_id" json:"job_id"`
	CandidateID int64             `db:"candidate_id" json:"candidate_id"`
	ResumePath  string            `db:"resume_path" json:"resume_path"`
	Status      ApplicationStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}
