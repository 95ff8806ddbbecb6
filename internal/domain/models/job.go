package models

import "time"

// Job is a vacancy joined with the company that posted it.
type Job struct {
	ID           int64      `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	CompanyID    int64      `json:"company_id"`
	CompanyName  string     `json:"company_name"`
	CompanySlug  string     `json:"company_slug"`
	CompanyLogo  string     `json:"company_logo,omitempty"`
	Location     string     `json:"location"`
	JobType      string     `json:"job_type"`
	CategoryID   string     `json:"category_id"`
	SalaryMin    int64      `json:"salary_min"`
	SalaryMax    int64      `json:"salary_max"`
	SalaryLabel  string     `json:"salary_label"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	PostedAt     time.Time  `json:"posted_at"`
}

// JobInput is the admin create/update payload.
type JobInput struct {
	Title        string `json:"title"`
	CompanyID    int64  `json:"company_id"`
	Location     string `json:"location"`
	JobType      string `json:"job_type"`
	CategoryID   string `json:"category_id"`
	SalaryMin    int64  `json:"salary_min"`
	SalaryMax    int64  `json:"salary_max"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Status       string `json:"status"`
	Deadline     string `json:"deadline"`
}
