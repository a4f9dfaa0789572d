package bot

import (
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

// fakeAPI записывает всё отправленное и умеет имитировать отказ
// доставки для отдельных чатов.
type fakeAPI struct {
	mu        sync.Mutex
	sent      []tgbotapi.Chattable
	requests  []tgbotapi.Chattable
	failChats map[int64]bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failChats[chatIDOf(c)] {
		return tgbotapi.Message{}, errors.New("Forbidden: bot was blocked by the user")
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func chatIDOf(c tgbotapi.Chattable) int64 {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.ChatID
	case tgbotapi.PhotoConfig:
		return v.ChatID
	case tgbotapi.VideoConfig:
		return v.ChatID
	case tgbotapi.EditMessageTextConfig:
		return v.ChatID
	case tgbotapi.DeleteMessageConfig:
		return v.ChatID
	}
	return 0
}

// lastText достаёт текст последнего отправленного сообщения или правки.
func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "ничего не отправлено")
	switch v := f.sent[len(f.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return v.Text
	case tgbotapi.EditMessageTextConfig:
		return v.Text
	case tgbotapi.PhotoConfig:
		return v.Caption
	case tgbotapi.VideoConfig:
		return v.Caption
	}
	t.Fatalf("последнее отправленное не содержит текста: %T", f.sent[len(f.sent)-1])
	return ""
}

// lastAlert находит последний callback-ответ с алертом. Обычные
// (пустые) подтверждения callback'ов пропускаются.
func (f *fakeAPI) lastAlert(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if cfg, ok := f.requests[i].(tgbotapi.CallbackConfig); ok && cfg.ShowAlert {
			return cfg.Text
		}
	}
	t.Fatal("алертов не было")
	return ""
}

func (f *fakeAPI) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.requests {
		if cfg, ok := r.(tgbotapi.CallbackConfig); ok && cfg.ShowAlert {
			count++
		}
	}
	return count
}

func newTestBot(t *testing.T, admins ...int64) (*Bot, *fakeAPI, *sql.DB) {
	t.Helper()
	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	api := &fakeAPI{failChats: make(map[int64]bool)}
	return newBot(api, db, admins, zerolog.Nop()), api, db
}

func mustAddCategory(t *testing.T, db *sql.DB, name, emoji string) int64 {
	t.Helper()
	require.NoError(t, storage.AddCategory(db, name, emoji))
	categories, err := storage.GetCategories(db)
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("категория %q не нашлась после вставки", name)
	return 0
}

// textMsg собирает входящее сообщение. Для команд ("/cancel")
// добавляется entity — без неё Command() вернёт пустую строку.
func textMsg(userID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "tester", FirstName: "Тест"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmd := text
		if i := strings.Index(text, " "); i > 0 {
			cmd = text[:i]
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	return msg
}

func photoMsg(userID int64, fileID string) *tgbotapi.Message {
	msg := textMsg(userID, "")
	msg.Photo = []tgbotapi.PhotoSize{{FileID: fileID}}
	return msg
}

func callback(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: userID, UserName: "tester", FirstName: "Тест"},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: userID}},
		Data:    data,
	}
}

func sendMessage(b *Bot, msg *tgbotapi.Message) {
	b.handleUpdate(tgbotapi.Update{Message: msg})
}

func sendCallback(b *Bot, cb *tgbotapi.CallbackQuery) {
	b.handleUpdate(tgbotapi.Update{CallbackQuery: cb})
}

// sessionState делает снимок сессии пользователя.
func sessionState(b *Bot, userID int64) Session {
	var snapshot Session
	b.sessions.Do(userID, func(s *Session) { snapshot = *s })
	return snapshot
}

func postsCount(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	count, err := storage.GetPostsCount(db)
	require.NoError(t, err)
	return count
}
