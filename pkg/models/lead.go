package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type LeadKind string

const (
	LeadContact    LeadKind = "contact"
	LeadEnrollment LeadKind = "enrollment"
)

// Submission is implemented by ContactSubmission and EnrollmentSubmission.
type Submission interface {
	Kind() LeadKind
	validate() error
}

// Lead is a prospective-customer form submission. Leads are append-only.
type Lead struct {
	ID         string
	CreatedAt  time.Time
	Submission Submission
}

type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type EnrollmentSubmission struct {
	StudentName string `json:"studentName"`
	ParentName  string `json:"parentName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	GradeLevel  string `json:"gradeLevel"`
	CourseID    string `json:"courseId"`
	Notes       string `json:"notes"`
}

func (ContactSubmission) Kind() LeadKind    { return LeadContact }
func (EnrollmentSubmission) Kind() LeadKind { return LeadEnrollment }

var ErrInvalidLead = errors.New("invalid lead")

func (c ContactSubmission) validate() error {
	if c.Name == "" || c.Email == "" {
		return fmt.Errorf("%w: contact requires name and email", ErrInvalidLead)
	}
	return nil
}

func (e EnrollmentSubmission) validate() error {
	if e.StudentName == "" || e.Email == "" || e.CourseID == "" {
		return fmt.Errorf("%w: enrollment requires studentName, email and courseId", ErrInvalidLead)
	}
	return nil
}

// Validate checks the variant-specific required fields.
func (l Lead) Validate() error {
	if l.Submission == nil {
		return fmt.Errorf("%w: missing submission type", ErrInvalidLead)
	}
	return l.Submission.validate()
}

// Kind returns the submission kind, or "" when the lead is empty.
func (l Lead) Kind() LeadKind {
	if l.Submission == nil {
		return ""
	}
	return l.Submission.Kind()
}

// Email returns the contact address for either variant.
func (l Lead) Email() string {
	switch s := l.Submission.(type) {
	case ContactSubmission:
		return s.Email
	case EnrollmentSubmission:
		return s.Email
	}
	return ""
}

type leadHeader struct {
	ID   string   `json:"id,omitempty"`
	Date string   `json:"date"`
	Type LeadKind `json:"type"`
}

// legacyDateLayouts are accepted when decoding dates written as display strings.
var legacyDateLayouts = []string{
	time.RFC3339Nano,
	"1/2/2006",
	"January 2, 2006",
	"2006-01-02",
}

func parseLeadDate(s string) time.Time {
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (l Lead) MarshalJSON() ([]byte, error) {
	if l.Submission == nil {
		return nil, fmt.Errorf("%w: missing submission", ErrInvalidLead)
	}
	fields, err := json.Marshal(l.Submission)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(fields, &out); err != nil {
		return nil, err
	}
	if l.ID != "" {
		out["id"] = l.ID
	}
	out["date"] = l.CreatedAt.UTC().Format(time.RFC3339Nano)
	out["type"] = l.Submission.Kind()
	return json.Marshal(out)
}

func (l *Lead) UnmarshalJSON(data []byte) error {
	var head leadHeader
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	l.ID = head.ID
	l.CreatedAt = parseLeadDate(head.Date)
	switch head.Type {
	case LeadContact:
		var s ContactSubmission
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		l.Submission = s
	case LeadEnrollment:
		var s EnrollmentSubmission
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		l.Submission = s
	default:
		return fmt.Errorf("%w: unknown lead type %q", ErrInvalidLead, head.Type)
	}
	return nil
}
