package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colorbulb/nexteliteweb2/pkg/content"
	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

func TestCheckFeatured(t *testing.T) {
	existing := []models.Course{
		{ID: "a", Featured: true},
		{ID: "b", Featured: true},
		{ID: "c", Featured: true, Disabled: true},
		{ID: "d"},
	}

	t.Run("third live featured course is accepted", func(t *testing.T) {
		assert.NoError(t, content.CheckFeatured(existing, models.Course{ID: "d", Featured: true}))
	})

	full := append(existing, models.Course{ID: "e", Featured: true})

	t.Run("fourth is rejected", func(t *testing.T) {
		assert.ErrorIs(t, content.CheckFeatured(full, models.Course{ID: "d", Featured: true}), content.ErrFeaturedLimit)
		assert.ErrorIs(t, content.CheckFeatured(full, models.Course{Featured: true}), content.ErrFeaturedLimit)
	})

	t.Run("re-saving a featured course is accepted", func(t *testing.T) {
		assert.NoError(t, content.CheckFeatured(full, models.Course{ID: "a", Featured: true, Title: "renamed"}))
	})

	t.Run("disabled or unfeatured candidates are not counted", func(t *testing.T) {
		assert.NoError(t, content.CheckFeatured(full, models.Course{ID: "d", Featured: true, Disabled: true}))
		assert.NoError(t, content.CheckFeatured(full, models.Course{ID: "d"}))
	})

	t.Run("accepted sets never exceed the cap", func(t *testing.T) {
		var accepted []models.Course
		for i := 0; i < 10; i++ {
			c := models.Course{ID: string(rune('a' + i)), Featured: true, Disabled: i%4 == 3}
			if content.CheckFeatured(accepted, c) == nil {
				accepted = append(accepted, c)
			}
		}
		live := 0
		for _, c := range accepted {
			if c.Live() {
				live++
			}
		}
		assert.Equal(t, content.MaxFeatured, live)
	})
}

func TestNormalizeCourse(t *testing.T) {
	c := content.NormalizeCourse(models.Course{Featured: true, Disabled: true})
	assert.False(t, c.Featured)
	c = content.NormalizeCourse(models.Course{Featured: true})
	assert.True(t, c.Featured)
}

func TestValidateCourse(t *testing.T) {
	assert.ErrorIs(t, content.ValidateCourse(models.Course{}), content.ErrInvalidCourse)
	bad := models.Course{Title: "x", Preview: &models.Preview{Body: models.VideoPreview{}}}
	assert.ErrorIs(t, content.ValidateCourse(bad), models.ErrInvalidPreview)
	assert.NoError(t, content.ValidateCourse(models.Course{Title: "x"}))

	emptyQuiz := models.Course{Title: "x", Preview: &models.Preview{Body: models.QuizPreview{}}}
	assert.NoError(t, content.ValidateCourse(emptyQuiz))
}

func TestCheckAnnouncementCap(t *testing.T) {
	anns := make([]models.Announcement, 4)
	assert.NoError(t, content.CheckAnnouncementCap(anns))
	anns = append(anns, models.Announcement{})
	assert.ErrorIs(t, content.CheckAnnouncementCap(anns), content.ErrAnnouncementLimit)
}

func TestPageFields(t *testing.T) {
	fields := content.PageFields(models.PageContent{
		"home":    {"title": "Hi", "body": "This is a rather long paragraph that goes past fifty characters."},
		"contact": {"title": "Get in Touch"},
	})
	assert.Equal(t, []content.PageField{
		{Page: "contact", Field: "title", Value: "Get in Touch"},
		{Page: "home", Field: "body", Value: "This is a rather long paragraph that goes past fifty characters.", Multiline: true},
		{Page: "home", Field: "title", Value: "Hi"},
	}, fields)
}
