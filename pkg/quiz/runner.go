// Package quiz steps a visitor through a course preview quiz.
package quiz

import (
	"errors"
	"fmt"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrInvalidOption     = errors.New("option out of range")
	ErrNoQuestions       = errors.New("quiz has no questions")
	ErrInvalidState      = errors.New("invalid quiz state")
)

type AnswerState string

const (
	Unanswered AnswerState = "unanswered"
	Correct    AnswerState = "correct"
	Incorrect  AnswerState = "incorrect"
)

// State is the serializable progress of a Runner.
type State struct {
	CurrentIndex   int         `json:"currentIndex"`
	SelectedOption *int        `json:"selectedOption"`
	Answer         AnswerState `json:"answerState"`
	Score          int         `json:"score"`
	Finished       bool        `json:"finished"`
}

func initialState() State {
	return State{Answer: Unanswered}
}

// Runner is a finite-state stepper over a fixed question list. It is not safe
// for concurrent use.
type Runner struct {
	questions []models.QuizQuestion
	state     State
}

func New(questions []models.QuizQuestion) (*Runner, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Runner{questions: questions, state: initialState()}, nil
}

// Restore rebuilds a Runner at a previously saved state.
func Restore(questions []models.QuizQuestion, st State) (*Runner, error) {
	r, err := New(questions)
	if err != nil {
		return nil, err
	}
	if st.Answer == "" {
		st.Answer = Unanswered
	}
	switch {
	case st.CurrentIndex < 0 || st.CurrentIndex >= len(questions):
		return nil, fmt.Errorf("%w: index %d", ErrInvalidState, st.CurrentIndex)
	case st.Score < 0 || st.Score > st.CurrentIndex+1:
		return nil, fmt.Errorf("%w: score %d", ErrInvalidState, st.Score)
	case st.Answer != Unanswered && st.Answer != Correct && st.Answer != Incorrect:
		return nil, fmt.Errorf("%w: answer state %q", ErrInvalidState, st.Answer)
	case st.Finished && st.Answer == Unanswered:
		return nil, fmt.Errorf("%w: finished without an answer", ErrInvalidState)
	}
	if st.SelectedOption != nil {
		opt := *st.SelectedOption
		if opt < 0 || opt >= len(questions[st.CurrentIndex].Options) {
			return nil, fmt.Errorf("%w: option %d", ErrInvalidState, opt)
		}
		st.SelectedOption = &opt
	}
	r.state = st
	return r, nil
}

// State returns a copy of the current progress.
func (r *Runner) State() State {
	st := r.state
	if st.SelectedOption != nil {
		opt := *st.SelectedOption
		st.SelectedOption = &opt
	}
	return st
}

// Question returns the question at the current index.
func (r *Runner) Question() models.QuizQuestion {
	return r.questions[r.state.CurrentIndex]
}

func (r *Runner) Len() int {
	return len(r.questions)
}

func (r *Runner) SelectOption(i int) error {
	if r.state.Finished || r.state.Answer != Unanswered {
		return fmt.Errorf("%w: select after answering", ErrInvalidTransition)
	}
	if i < 0 || i >= len(r.Question().Options) {
		return fmt.Errorf("%w: %d", ErrInvalidOption, i)
	}
	r.state.SelectedOption = &i
	return nil
}

func (r *Runner) Check() error {
	if r.state.Finished || r.state.Answer != Unanswered || r.state.SelectedOption == nil {
		return fmt.Errorf("%w: check needs an unanswered question with a selected option", ErrInvalidTransition)
	}
	if *r.state.SelectedOption == r.Question().CorrectAnswer {
		r.state.Answer = Correct
		r.state.Score++
	} else {
		r.state.Answer = Incorrect
	}
	return nil
}

func (r *Runner) Next() error {
	if r.state.Finished || r.state.Answer == Unanswered {
		return fmt.Errorf("%w: next before checking", ErrInvalidTransition)
	}
	if r.state.CurrentIndex == len(r.questions)-1 {
		r.state.Finished = true
		return nil
	}
	r.state.CurrentIndex++
	r.state.SelectedOption = nil
	r.state.Answer = Unanswered
	return nil
}

func (r *Runner) Restart() error {
	if !r.state.Finished {
		return fmt.Errorf("%w: restart before finishing", ErrInvalidTransition)
	}
	r.state = initialState()
	return nil
}
