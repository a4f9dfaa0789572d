package bot

import "sync"

// State — текущий шаг активного визарда.
type State int

const (
	StateIdle State = iota

	StateAddPostTitle
	StateAddPostDescription
	StateAddPostMedia
	StateAddPostCategory
	StateAddPostSubcategory
	StateAddPostInlineSubcat
	StateAddPostBroadcast

	StateEditPostTitle
	StateEditPostDescription

	StateAddMarathonName
	StateAddMarathonURL
	StateAddMarathonEmoji

	StateEditMarathonName
	StateEditMarathonURL
	StateEditMarathonEmoji

	StateAddCategoryName
	StateAddCategoryEmoji

	StateAddSubcategoryName
)

type postDraft struct {
	Title         string
	Description   string
	MediaType     string
	MediaFileID   string
	CategoryID    int64
	SubcategoryID *int64
	NewPostID     int64 // заполняется после вставки, ждёт ответа о рассылке
}

type postEditDraft struct {
	PostID int64
	Title  string
}

type marathonDraft struct {
	Name string
	URL  string
}

type marathonEditDraft struct {
	MarathonID int64
	Name       string
	URL        string
}

type categoryDraft struct {
	Name string
}

// Session — эфемерный диалоговый контекст одного пользователя: шаг
// визарда, черновик (не более одного активного) и хлебные крошки
// навигации. Не переживает рестарт процесса.
type Session struct {
	State State

	Post         *postDraft
	PostEdit     *postEditDraft
	Marathon     *marathonDraft
	MarathonEdit *marathonEditDraft
	Category     *categoryDraft

	// Категория, под которой создаётся подкатегория.
	WizardCategoryID int64

	// Хлебные крошки просмотра.
	BrowseCategoryID    int64
	BrowseSubcategoryID int64
}

// Reset сбрасывает визард и черновики, хлебные крошки остаются.
func (s *Session) Reset() {
	browseCat, browseSub := s.BrowseCategoryID, s.BrowseSubcategoryID
	*s = Session{BrowseCategoryID: browseCat, BrowseSubcategoryID: browseSub}
}

// Sessions хранит сессии по ID пользователя. Do выполняет fn под
// замком конкретной сессии: шаги одного пользователя строго
// последовательны, разные пользователи друг друга не ждут.
type Sessions struct {
	mu      sync.Mutex
	entries map[int64]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session Session
}

func NewSessions() *Sessions {
	return &Sessions{entries: make(map[int64]*sessionEntry)}
}

func (s *Sessions) Do(userID int64, fn func(*Session)) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	if !ok {
		e = &sessionEntry{}
		s.entries[userID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
}
