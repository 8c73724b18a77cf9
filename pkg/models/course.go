package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Course is a program offered by the academy.
type Course struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Category         string   `json:"category"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription"`
	Instructor       string   `json:"instructor"`
	Duration         string   `json:"duration"`
	Level            string   `json:"level"`
	Image            string   `json:"image"`
	Syllabus         []string `json:"syllabus"`
	Preview          *Preview `json:"preview,omitempty"`
	Featured         bool     `json:"featured"`
	Disabled         bool     `json:"disabled"`
}

// Live reports whether the course counts towards the featured limit.
func (c Course) Live() bool {
	return c.Featured && !c.Disabled
}

type PreviewKind string

const (
	PreviewQuiz     PreviewKind = "quiz"
	PreviewVideo    PreviewKind = "video"
	PreviewDocument PreviewKind = "document"
)

// PreviewBody is implemented by QuizPreview, VideoPreview and DocumentPreview.
type PreviewBody interface {
	Kind() PreviewKind
	validate() error
}

// Preview is the optional teaser block shown on a course page.
type Preview struct {
	Title       string
	Description string
	Body        PreviewBody
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type QuizPreview struct {
	Questions []QuizQuestion
}

type VideoPreview struct {
	URL string
}

type DocumentPreview struct {
	URL string
}

func (QuizPreview) Kind() PreviewKind     { return PreviewQuiz }
func (VideoPreview) Kind() PreviewKind    { return PreviewVideo }
func (DocumentPreview) Kind() PreviewKind { return PreviewDocument }

var ErrInvalidPreview = errors.New("invalid course preview")

// An empty quiz is valid; visitors are shown no quiz until it has questions.
func (q QuizPreview) validate() error {
	for i, question := range q.Questions {
		if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
			return fmt.Errorf("%w: question %d has correct answer %d out of %d options",
				ErrInvalidPreview, i+1, question.CorrectAnswer, len(question.Options))
		}
	}
	return nil
}

func (v VideoPreview) validate() error {
	if v.URL == "" {
		return fmt.Errorf("%w: video url is required", ErrInvalidPreview)
	}
	return nil
}

func (d DocumentPreview) validate() error {
	if d.URL == "" {
		return fmt.Errorf("%w: document url is required", ErrInvalidPreview)
	}
	return nil
}

// Validate checks the variant-specific required fields.
func (p *Preview) Validate() error {
	if p.Body == nil {
		return fmt.Errorf("%w: missing preview type", ErrInvalidPreview)
	}
	return p.Body.validate()
}

// Questions returns the quiz questions, or nil for non-quiz previews.
func (p *Preview) Questions() []QuizQuestion {
	if p == nil {
		return nil
	}
	if q, ok := p.Body.(QuizPreview); ok {
		return q.Questions
	}
	return nil
}

type previewJSON struct {
	Type        PreviewKind    `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	QuizData    []QuizQuestion `json:"quizData,omitempty"`
	VideoURL    string         `json:"videoUrl,omitempty"`
	DocumentURL string         `json:"documentUrl,omitempty"`
}

func (p Preview) MarshalJSON() ([]byte, error) {
	out := previewJSON{Title: p.Title, Description: p.Description}
	switch body := p.Body.(type) {
	case QuizPreview:
		out.Type = PreviewQuiz
		out.QuizData = body.Questions
	case VideoPreview:
		out.Type = PreviewVideo
		out.VideoURL = body.URL
	case DocumentPreview:
		out.Type = PreviewDocument
		out.DocumentURL = body.URL
	default:
		return nil, fmt.Errorf("%w: unknown preview body %T", ErrInvalidPreview, p.Body)
	}
	return json.Marshal(out)
}

func (p *Preview) UnmarshalJSON(data []byte) error {
	var in previewJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Title = in.Title
	p.Description = in.Description
	switch in.Type {
	case PreviewQuiz:
		p.Body = QuizPreview{Questions: in.QuizData}
	case PreviewVideo:
		p.Body = VideoPreview{URL: in.VideoURL}
	case PreviewDocument:
		p.Body = DocumentPreview{URL: in.DocumentURL}
	default:
		return fmt.Errorf("%w: unknown preview type %q", ErrInvalidPreview, in.Type)
	}
	return nil
}
