package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

// ErrMissingField — попытка коммита без обязательных полей черновика.
// По последовательности шагов недостижимо, но проверяется перед каждой
// записью: лучше сброшенная сессия, чем битая строка в БД.
var ErrMissingField = errors.New("в черновике не хватает обязательных полей")

// skipToken оставляет полю прежнее (или пустое) значение.
const skipToken = "-"

const genericErrorText = "⚠️ Что-то пошло не так. Начните заново."

// ========== Запуск визардов (по нажатию кнопки) ==========

func (b *Bot) startAddPost(cb *tgbotapi.CallbackQuery, s *Session) {
	s.Reset()
	s.State = StateAddPostTitle
	s.Post = &postDraft{}
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "📝 Введите название поста:\n\n(или /cancel для отмены)")
}

func (b *Bot) startEditPost(cb *tgbotapi.CallbackQuery, s *Session, postID int64) {
	if _, err := storage.GetPost(b.db, postID); err != nil {
		b.alertCallback(cb.ID, "Пост не найден")
		return
	}
	s.Reset()
	s.State = StateEditPostTitle
	s.PostEdit = &postEditDraft{PostID: postID}
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "✏️ Введите новое название поста (или '-' чтобы оставить прежнее):")
}

func (b *Bot) startAddMarathon(cb *tgbotapi.CallbackQuery, s *Session) {
	s.Reset()
	s.State = StateAddMarathonName
	s.Marathon = &marathonDraft{}
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "🔗 Введите название марафона:\n\n(или /cancel для отмены)")
}

func (b *Bot) startEditMarathon(cb *tgbotapi.CallbackQuery, s *Session, marathonID int64) {
	if _, err := storage.GetMarathon(b.db, marathonID); err != nil {
		b.alertCallback(cb.ID, "Марафон не найден")
		return
	}
	s.Reset()
	s.State = StateEditMarathonName
	s.MarathonEdit = &marathonEditDraft{MarathonID: marathonID}
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "✏️ Введите новое название (или '-' чтобы оставить прежнее):")
}

func (b *Bot) startAddCategory(cb *tgbotapi.CallbackQuery, s *Session) {
	s.Reset()
	s.State = StateAddCategoryName
	s.Category = &categoryDraft{}
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "📁 Введите название новой категории:")
}

func (b *Bot) startAddSubcategory(cb *tgbotapi.CallbackQuery, s *Session, categoryID int64) {
	s.Reset()
	s.State = StateAddSubcategoryName
	s.WizardCategoryID = categoryID
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "📂 Введите название новой подкатегории:")
}

// startCreateSubcatInline — вложенный шаг создания подкатегории прямо
// из визарда добавления поста. Черновик поста сохраняется.
func (b *Bot) startCreateSubcatInline(cb *tgbotapi.CallbackQuery, s *Session) {
	if s.State != StateAddPostSubcategory || s.Post == nil {
		b.answerCallback(cb.ID)
		return
	}
	s.State = StateAddPostInlineSubcat
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "📂 Введите название новой подкатегории:")
}

// ========== Отмена ==========

func (b *Bot) cancelWizard(chatID, userID int64, s *Session) {
	s.Reset()
	b.sendWithKeyboard(chatID, "❌ Действие отменено.\n\n📋 Главное меню:", b.mainMenuMarkup(userID))
}

// ========== Текстовые шаги ==========

// handleWizardMessage продвигает активный визард по входящему
// сообщению. Неподходящий ввод (не то, чего ждёт шаг) приводит к
// повторному приглашению без смены состояния.
func (b *Bot) handleWizardMessage(msg *tgbotapi.Message, s *Session) {
	chatID := msg.Chat.ID
	text := msg.Text

	switch s.State {
	case StateAddPostTitle:
		if text == "" {
			b.sendText(chatID, "📝 Введите название поста:")
			return
		}
		s.Post.Title = text
		s.State = StateAddPostDescription
		b.sendText(chatID, "📝 Введите описание поста:\n\n(или отправьте '-' чтобы пропустить)")

	case StateAddPostDescription:
		if text == "" {
			b.sendText(chatID, "📝 Введите описание поста (или '-'):")
			return
		}
		if text != skipToken {
			s.Post.Description = text
		}
		s.State = StateAddPostMedia
		b.sendText(chatID, "📷 Отправьте фото или видео для поста:\n\n(или отправьте '-' чтобы пропустить)")

	case StateAddPostMedia:
		switch {
		case text == skipToken:
			// без медиа
		case len(msg.Photo) > 0:
			s.Post.MediaType = database.MediaPhoto
			s.Post.MediaFileID = msg.Photo[len(msg.Photo)-1].FileID
		case msg.Video != nil:
			s.Post.MediaType = database.MediaVideo
			s.Post.MediaFileID = msg.Video.FileID
		default:
			b.sendText(chatID, "Пожалуйста, отправьте фото, видео или '-' чтобы пропустить")
			return
		}
		categories, err := storage.GetCategories(b.db)
		if err != nil {
			b.log.Error().Err(err).Msg("categories query failed")
			b.sendText(chatID, genericErrorText)
			return
		}
		s.State = StateAddPostCategory
		b.sendWithKeyboard(chatID, "📁 Выберите категорию:", selectCategoryKeyboard(categories))

	case StateAddPostCategory:
		// Шаг выбора: свободный текст не принимается.
		b.sendText(chatID, "📁 Выберите категорию кнопкой выше")

	case StateAddPostSubcategory:
		b.sendText(chatID, "📂 Выберите подкатегорию кнопкой выше")

	case StateAddPostBroadcast:
		b.sendText(chatID, "Ответьте кнопкой: разослать пост или нет")

	case StateAddPostInlineSubcat:
		if text == "" {
			b.sendText(chatID, "📂 Введите название новой подкатегории:")
			return
		}
		subcatID, err := storage.AddSubcategory(b.db, text, s.Post.CategoryID)
		if err != nil {
			b.log.Error().Err(err).Msg("subcategory insert failed")
			b.sendText(chatID, "❌ Ошибка при создании подкатегории")
			return
		}
		s.Post.SubcategoryID = &subcatID
		b.commitAddPost(chatID, s)

	case StateEditPostTitle:
		if text == "" {
			b.sendText(chatID, "✏️ Введите новое название поста (или '-'):")
			return
		}
		if text == skipToken {
			post, err := storage.GetPost(b.db, s.PostEdit.PostID)
			if err != nil {
				s.Reset()
				b.sendText(chatID, "Пост не найден")
				return
			}
			s.PostEdit.Title = post.Title
		} else {
			s.PostEdit.Title = text
		}
		s.State = StateEditPostDescription
		b.sendText(chatID, "✏️ Введите новое описание (или '-' чтобы оставить прежнее):")

	case StateEditPostDescription:
		if text == "" {
			b.sendText(chatID, "✏️ Введите новое описание (или '-'):")
			return
		}
		b.commitEditPost(chatID, s, text)

	case StateAddMarathonName:
		if text == "" {
			b.sendText(chatID, "🔗 Введите название марафона:")
			return
		}
		s.Marathon.Name = text
		s.State = StateAddMarathonURL
		b.sendText(chatID, "🔗 Введите URL ссылки:")

	case StateAddMarathonURL:
		if text == "" {
			b.sendText(chatID, "🔗 Введите URL ссылки:")
			return
		}
		s.Marathon.URL = text
		s.State = StateAddMarathonEmoji
		b.sendText(chatID, "🎨 Введите эмодзи (или '-' для ➡️ по умолчанию):")

	case StateAddMarathonEmoji:
		if text == "" {
			b.sendText(chatID, "🎨 Введите эмодзи (или '-'):")
			return
		}
		emoji := text
		if emoji == skipToken {
			emoji = "➡️"
		}
		b.commitAddMarathon(chatID, s, emoji)

	case StateEditMarathonName:
		b.editMarathonStep(chatID, s, text)

	case StateEditMarathonURL:
		b.editMarathonStep(chatID, s, text)

	case StateEditMarathonEmoji:
		b.editMarathonStep(chatID, s, text)

	case StateAddCategoryName:
		if text == "" {
			b.sendText(chatID, "📁 Введите название новой категории:")
			return
		}
		s.Category.Name = text
		s.State = StateAddCategoryEmoji
		b.sendText(chatID, "🎨 Введите эмодзи для категории (например: 🏢):")

	case StateAddCategoryEmoji:
		if text == "" {
			b.sendText(chatID, "🎨 Введите эмодзи для категории:")
			return
		}
		b.commitAddCategory(chatID, s, text)

	case StateAddSubcategoryName:
		if text == "" {
			b.sendText(chatID, "📂 Введите название новой подкатегории:")
			return
		}
		b.commitAddSubcategory(chatID, s, text)
	}
}

func (b *Bot) editMarathonStep(chatID int64, s *Session, text string) {
	if text == "" {
		b.sendText(chatID, "✏️ Введите значение (или '-'):")
		return
	}

	marathon, err := storage.GetMarathon(b.db, s.MarathonEdit.MarathonID)
	if err != nil {
		s.Reset()
		b.sendText(chatID, "Марафон не найден")
		return
	}

	switch s.State {
	case StateEditMarathonName:
		s.MarathonEdit.Name = text
		if text == skipToken {
			s.MarathonEdit.Name = marathon.Name
		}
		s.State = StateEditMarathonURL
		b.sendText(chatID, "✏️ Введите новый URL (или '-'):")

	case StateEditMarathonURL:
		s.MarathonEdit.URL = text
		if text == skipToken {
			s.MarathonEdit.URL = marathon.URL
		}
		s.State = StateEditMarathonEmoji
		b.sendText(chatID, "✏️ Введите новый эмодзи (или '-'):")

	case StateEditMarathonEmoji:
		emoji := text
		if emoji == skipToken {
			emoji = marathon.Emoji
		}
		b.commitEditMarathon(chatID, s, emoji)
	}
}

// ========== Шаги выбора (по кнопкам) ==========

func (b *Bot) pickPostCategory(cb *tgbotapi.CallbackQuery, s *Session, categoryID int64) {
	if s.State != StateAddPostCategory || s.Post == nil {
		b.answerCallback(cb.ID)
		return
	}
	if _, err := storage.GetCategory(b.db, categoryID); err != nil {
		b.alertCallback(cb.ID, "Категория не найдена")
		return
	}

	s.Post.CategoryID = categoryID
	s.State = StateAddPostSubcategory

	subcategories, err := storage.GetSubcategories(b.db, categoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("subcategories query failed")
		b.sendText(cb.Message.Chat.ID, genericErrorText)
		return
	}

	if len(subcategories) > 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"📂 Выберите подкатегорию:", selectSubcategoryKeyboard(subcategories))
	} else {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"📂 В этой категории нет подкатегорий.\n\nВыберите действие:", noSubcategoriesKeyboard(categoryID))
	}
}

func (b *Bot) pickPostSubcategory(cb *tgbotapi.CallbackQuery, s *Session, subcategoryID int64) {
	if s.State != StateAddPostSubcategory || s.Post == nil {
		b.answerCallback(cb.ID)
		return
	}
	if subcategoryID != 0 {
		s.Post.SubcategoryID = &subcategoryID
	}
	b.commitAddPostEdit(cb, s)
}

// ========== Коммиты ==========

// commitAddPost атомарно записывает собранный черновик поста и
// переводит визард в терминальный шаг выбора рассылки.
func (b *Bot) commitAddPost(chatID int64, s *Session) {
	postID, err := b.insertDraftPost(s)
	if err != nil {
		b.failCommit(chatID, s, err)
		return
	}
	s.Post.NewPostID = postID
	s.State = StateAddPostBroadcast
	b.sendWithKeyboard(chatID, "✅ Пост успешно создан!\n\nХотите разослать его всем пользователям?", broadcastKeyboard())
}

// commitAddPostEdit — то же, но ответ рисуется поверх экрана выбора.
func (b *Bot) commitAddPostEdit(cb *tgbotapi.CallbackQuery, s *Session) {
	postID, err := b.insertDraftPost(s)
	if err != nil {
		b.failCommit(cb.Message.Chat.ID, s, err)
		return
	}
	s.Post.NewPostID = postID
	s.State = StateAddPostBroadcast
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Пост успешно создан!\n\nХотите разослать его всем пользователям?", broadcastKeyboard())
}

func (b *Bot) insertDraftPost(s *Session) (int64, error) {
	if s.Post == nil || s.Post.Title == "" || s.Post.CategoryID == 0 {
		return 0, ErrMissingField
	}
	return storage.AddPost(b.db, database.Post{
		Title:         s.Post.Title,
		Description:   s.Post.Description,
		MediaType:     s.Post.MediaType,
		MediaFileID:   s.Post.MediaFileID,
		CategoryID:    s.Post.CategoryID,
		SubcategoryID: s.Post.SubcategoryID,
	})
}

func (b *Bot) commitEditPost(chatID int64, s *Session, descriptionInput string) {
	if s.PostEdit == nil || s.PostEdit.PostID == 0 || s.PostEdit.Title == "" {
		b.failCommit(chatID, s, ErrMissingField)
		return
	}

	description := descriptionInput
	if descriptionInput == skipToken {
		post, err := storage.GetPost(b.db, s.PostEdit.PostID)
		if err != nil {
			s.Reset()
			b.sendText(chatID, "Пост не найден")
			return
		}
		description = post.Description
	}

	if err := storage.UpdatePost(b.db, s.PostEdit.PostID, s.PostEdit.Title, description); err != nil {
		b.failCommit(chatID, s, err)
		return
	}
	s.Reset()
	b.sendWithKeyboard(chatID, "✅ Пост обновлён!", postsManagementKeyboard())
}

func (b *Bot) commitAddMarathon(chatID int64, s *Session, emoji string) {
	if s.Marathon == nil || s.Marathon.Name == "" || s.Marathon.URL == "" {
		b.failCommit(chatID, s, ErrMissingField)
		return
	}
	if err := storage.AddMarathon(b.db, s.Marathon.Name, s.Marathon.URL, emoji); err != nil {
		b.failCommit(chatID, s, err)
		return
	}
	s.Reset()
	b.sendWithKeyboard(chatID, "✅ Марафон добавлен!", marathonsManagementKeyboard())
}

func (b *Bot) commitEditMarathon(chatID int64, s *Session, emoji string) {
	if s.MarathonEdit == nil || s.MarathonEdit.MarathonID == 0 ||
		s.MarathonEdit.Name == "" || s.MarathonEdit.URL == "" {
		b.failCommit(chatID, s, ErrMissingField)
		return
	}
	if err := storage.UpdateMarathon(b.db, s.MarathonEdit.MarathonID,
		s.MarathonEdit.Name, s.MarathonEdit.URL, emoji); err != nil {
		b.failCommit(chatID, s, err)
		return
	}
	s.Reset()
	b.sendWithKeyboard(chatID, "✅ Марафон обновлён!", marathonsManagementKeyboard())
}

func (b *Bot) commitAddCategory(chatID int64, s *Session, emoji string) {
	if s.Category == nil || s.Category.Name == "" {
		b.failCommit(chatID, s, ErrMissingField)
		return
	}
	// Дубликат имени режется UNIQUE-ограничением в БД.
	if err := storage.AddCategory(b.db, s.Category.Name, emoji); err != nil {
		s.Reset()
		b.sendText(chatID, "❌ Не удалось добавить категорию (возможно, такое имя уже есть)")
		return
	}
	s.Reset()

	categories, err := storage.GetCategories(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("categories query failed")
		return
	}
	b.sendWithKeyboard(chatID, "✅ Категория добавлена!\n\n📁 <b>Управление категориями</b>",
		adminCategoriesKeyboard(categories))
}

func (b *Bot) commitAddSubcategory(chatID int64, s *Session, name string) {
	categoryID := s.WizardCategoryID
	if categoryID == 0 {
		b.failCommit(chatID, s, ErrMissingField)
		return
	}
	if _, err := storage.AddSubcategory(b.db, name, categoryID); err != nil {
		b.failCommit(chatID, s, err)
		return
	}
	s.Reset()

	subcategories, err := storage.GetSubcategories(b.db, categoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("subcategories query failed")
		return
	}
	b.sendWithKeyboard(chatID, "✅ Подкатегория добавлена!",
		adminSubcategoriesKeyboard(subcategories, categoryID))
}

// failCommit сбрасывает сессию и сообщает об ошибке, ничего не записав.
func (b *Bot) failCommit(chatID int64, s *Session, err error) {
	b.log.Error().Err(err).Msg("wizard commit failed")
	s.Reset()
	b.sendText(chatID, genericErrorText)
}

// ========== Терминальный шаг: рассылка ==========

func (b *Bot) handleBroadcastChoice(cb *tgbotapi.CallbackQuery, s *Session, broadcast bool) {
	if s.State != StateAddPostBroadcast || s.Post == nil || s.Post.NewPostID == 0 {
		b.alertCallback(cb.ID, "Пост не найден")
		return
	}
	postID := s.Post.NewPostID
	s.Reset()

	if !broadcast {
		b.editText(cb.Message.Chat.ID, cb.Message.MessageID, "✅ Пост сохранён без рассылки.")
		b.sendWithKeyboard(cb.Message.Chat.ID, "📝 Управление постами", postsManagementKeyboard())
		return
	}

	post, err := storage.GetPost(b.db, postID)
	if err != nil {
		b.alertCallback(cb.ID, "Пост не найден")
		return
	}

	sent := b.broadcastPost(post)
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📢 Пост разослан %d пользователям!", sent))
	b.sendWithKeyboard(cb.Message.Chat.ID, "📝 Управление постами", postsManagementKeyboard())
}
