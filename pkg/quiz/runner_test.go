package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
	"github.com/colorbulb/nexteliteweb2/pkg/quiz"
)

func questions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
		{Question: "q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		{Question: "q3", Options: []string{"a", "b"}, CorrectAnswer: 1},
	}
}

func answer(t *testing.T, r *quiz.Runner, option int) {
	t.Helper()
	require.NoError(t, r.SelectOption(option))
	require.NoError(t, r.Check())
	require.NoError(t, r.Next())
}

func TestScoring(t *testing.T) {
	r, err := quiz.New(questions())
	require.NoError(t, err)

	answer(t, r, 0)
	answer(t, r, 1)
	answer(t, r, 1)

	st := r.State()
	assert.Equal(t, 2, st.Score)
	assert.True(t, st.Finished)
	assert.Equal(t, 2, st.CurrentIndex)

	require.NoError(t, r.Restart())
	assert.Equal(t, quiz.State{Answer: quiz.Unanswered}, r.State())
}

func TestTransitions(t *testing.T) {
	r, err := quiz.New(questions())
	require.NoError(t, err)

	assert.ErrorIs(t, r.Check(), quiz.ErrInvalidTransition, "nothing selected")
	assert.ErrorIs(t, r.Next(), quiz.ErrInvalidTransition, "not answered")
	assert.ErrorIs(t, r.Restart(), quiz.ErrInvalidTransition, "not finished")
	assert.ErrorIs(t, r.SelectOption(3), quiz.ErrInvalidOption)

	require.NoError(t, r.SelectOption(1))
	require.NoError(t, r.SelectOption(2))
	require.NoError(t, r.Check())
	assert.Equal(t, quiz.Incorrect, r.State().Answer)
	assert.Equal(t, 0, r.State().Score)

	assert.ErrorIs(t, r.SelectOption(0), quiz.ErrInvalidTransition)
	assert.ErrorIs(t, r.Check(), quiz.ErrInvalidTransition)

	require.NoError(t, r.Next())
	st := r.State()
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Nil(t, st.SelectedOption)
	assert.Equal(t, quiz.Unanswered, st.Answer)
	assert.Equal(t, "q2", r.Question().Question)

	answer(t, r, 2)
	answer(t, r, 1)
	require.True(t, r.State().Finished)
	for _, err := range []error{r.SelectOption(0), r.Check(), r.Next()} {
		assert.ErrorIs(t, err, quiz.ErrInvalidTransition)
	}
}

func TestStateIsCopied(t *testing.T) {
	r, err := quiz.New(questions())
	require.NoError(t, err)
	require.NoError(t, r.SelectOption(1))

	st := r.State()
	*st.SelectedOption = 2
	assert.Equal(t, 1, *r.State().SelectedOption)
}

func TestRestore(t *testing.T) {
	one := 1
	r, err := quiz.Restore(questions(), quiz.State{CurrentIndex: 1, SelectedOption: &one, Score: 1})
	require.NoError(t, err)
	require.NoError(t, r.Check())
	assert.Equal(t, quiz.Incorrect, r.State().Answer)
	assert.Equal(t, 1, r.State().Score)

	seven := 7
	bad := []quiz.State{
		{CurrentIndex: 3},
		{CurrentIndex: -1},
		{CurrentIndex: 0, Score: 2},
		{Answer: "maybe"},
		{Finished: true},
		{SelectedOption: &seven},
	}
	for _, st := range bad {
		_, err := quiz.Restore(questions(), st)
		assert.ErrorIs(t, err, quiz.ErrInvalidState, "%+v", st)
	}

	_, err = quiz.New(nil)
	assert.ErrorIs(t, err, quiz.ErrNoQuestions)
}
