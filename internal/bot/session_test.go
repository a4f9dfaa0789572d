package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionResetKeepsBreadcrumbs(t *testing.T) {
	s := Session{
		State:               StateAddPostTitle,
		Post:                &postDraft{Title: "x"},
		WizardCategoryID:    3,
		BrowseCategoryID:    1,
		BrowseSubcategoryID: 2,
	}
	s.Reset()

	assert.Equal(t, StateIdle, s.State)
	assert.Nil(t, s.Post)
	assert.Zero(t, s.WizardCategoryID)
	assert.Equal(t, int64(1), s.BrowseCategoryID)
	assert.Equal(t, int64(2), s.BrowseSubcategoryID)
}

func TestSessionsDoSerializesPerUser(t *testing.T) {
	sessions := NewSessions()

	// Конкурентные шаги одного пользователя не теряют обновлений.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions.Do(1, func(s *Session) { s.BrowseCategoryID++ })
		}()
	}
	wg.Wait()

	sessions.Do(1, func(s *Session) {
		assert.Equal(t, int64(100), s.BrowseCategoryID)
	})
}

func TestSessionsIsolatedByUser(t *testing.T) {
	sessions := NewSessions()

	sessions.Do(1, func(s *Session) { s.State = StateAddPostTitle })
	sessions.Do(2, func(s *Session) {
		assert.Equal(t, StateIdle, s.State)
	})
	sessions.Do(1, func(s *Session) {
		assert.Equal(t, StateAddPostTitle, s.State)
	})
}
