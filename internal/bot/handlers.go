package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := msg.From.ID

	b.sessions.Do(userID, func(s *Session) {
		switch msg.Command() {
		case "start":
			b.handleStart(msg, s)
		case "help":
			b.handleHelp(msg.Chat.ID)
		case "menu":
			s.Reset()
			b.sendWithKeyboard(msg.Chat.ID, "📋 Главное меню:", b.mainMenuMarkup(userID))
		case "cancel":
			// Отмена проверяется раньше шагов визарда.
			if s.State != StateIdle {
				b.cancelWizard(msg.Chat.ID, userID, s)
			}
		default:
			b.handleWizardMessage(msg, s)
		}
	})
}

func (b *Bot) handleStart(msg *tgbotapi.Message, s *Session) {
	s.Reset()

	if err := storage.AddUser(b.db, msg.From.ID, msg.From.UserName, msg.From.FirstName); err != nil {
		b.log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("user upsert failed")
	}

	text := fmt.Sprintf("✨ <b>Привет, %s!</b> ✨\n\n", msg.From.FirstName)
	text += "Рада видеть тебя здесь! 🤗\n\n"
	text += "Здесь ты найдёшь:\n"
	text += "🏢 Полезные материалы о бизнесе\n"
	text += "🍽 Секреты правильного питания\n"
	text += "💪 Советы для здоровья\n"
	text += "🛍 Каталог товаров со скидками\n\n"
	text += "Выбирай раздел и начинай! 👇"

	b.sendWithKeyboard(msg.Chat.ID, text, b.mainMenuMarkup(msg.From.ID))
}

func (b *Bot) handleHelp(chatID int64) {
	text := "📚 <b>Помощь по боту</b>\n\n"
	text += "🏢 <b>Бизнес</b> — посты о бизнесе\n"
	text += "🍽 <b>Питание</b> — посты о питании\n"
	text += "💪 <b>Здоровье</b> — посты о здоровье\n"
	text += "🔗 <b>Важные ссылки</b> — марафоны и ссылки\n\n"
	text += "📌 <b>Команды:</b>\n"
	text += "/start — главное меню\n"
	text += "/help — помощь\n"
	text += "/menu — открыть меню"

	b.sendText(chatID, text)
}

func (b *Bot) mainMenuMarkup(userID int64) tgbotapi.InlineKeyboardMarkup {
	categories, err := storage.GetCategories(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("categories query failed")
	}
	return mainMenuKeyboard(categories, b.isAdmin(userID))
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}

	action, err := ParseAction(cb.Data)
	if err != nil {
		b.log.Warn().Str("data", cb.Data).Msg("unknown callback")
		b.alertCallback(cb.ID, "❌ Неверная команда")
		return
	}

	if action.adminOnly() && !b.isAdmin(cb.From.ID) {
		b.alertCallback(cb.ID, "У вас нет доступа к админ-панели.")
		return
	}

	b.sessions.Do(cb.From.ID, func(s *Session) {
		b.dispatchCallback(cb, s, action)
	})

	b.answerCallback(cb.ID)
}

func (b *Bot) dispatchCallback(cb *tgbotapi.CallbackQuery, s *Session, action Action) {
	switch action.Kind {
	// Отмена — раньше любых шагов визарда.
	case KindCancel:
		b.cancelWizard(cb.Message.Chat.ID, cb.From.ID, s)

	// Навигация пользователя
	case KindMainMenu:
		s.Reset()
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, "📋 Главное меню:", b.mainMenuMarkup(cb.From.ID))
	case KindCatalog:
		b.showCatalog(cb)
	case KindLinks, KindBackMarathons:
		b.showMarathons(cb)
	case KindMarathon:
		b.showMarathon(cb, action.ID)
	case KindCategory:
		b.showCategory(cb, s, action.ID)
	case KindSubcategory:
		b.showSubcategoryPosts(cb, s, action.ID)
	case KindBackSubcats:
		b.showCategory(cb, s, action.ID)
	case KindPost:
		b.showPost(cb, s, action.ID)

	// Админка: экраны и удаление
	case KindAdminMenu:
		b.showAdminMenu(cb)
	case KindAdminPosts:
		b.showPostsManagement(cb)
	case KindAdminMarathons:
		b.showMarathonsManagement(cb)
	case KindAdminStats:
		b.showStats(cb)
	case KindAdminSettings:
		b.showSettings(cb)
	case KindToggleNotif:
		b.toggleNotifications(cb)
	case KindListPosts:
		b.listPostsAdmin(cb)
	case KindAdminPost:
		b.showPostAdmin(cb, action.ID)
	case KindDeletePost:
		b.deletePost(cb, action.ID)
	case KindManageCategories:
		b.manageCategories(cb)
	case KindDeleteCategory:
		b.deleteCategory(cb, action.ID)
	case KindManageSubcats:
		b.manageSubcategories(cb)
	case KindAdminSubcats:
		b.showSubcategoriesAdmin(cb, action.ID)
	case KindDeleteSubcategory:
		b.deleteSubcategory(cb, action.ID)
	case KindListMarathons:
		b.listMarathonsAdmin(cb)
	case KindAdminMarathon:
		b.showMarathonAdmin(cb, action.ID)
	case KindDeleteMarathon:
		b.deleteMarathon(cb, action.ID)

	// Визарды
	case KindAddPost:
		b.startAddPost(cb, s)
	case KindEditPost:
		b.startEditPost(cb, s, action.ID)
	case KindAddMarathon:
		b.startAddMarathon(cb, s)
	case KindEditMarathon:
		b.startEditMarathon(cb, s, action.ID)
	case KindAddCategory:
		b.startAddCategory(cb, s)
	case KindAddSubcategory:
		b.startAddSubcategory(cb, s, action.ID)
	case KindCreateSubcatHere:
		b.startCreateSubcatInline(cb, s)
	case KindPickCategory:
		b.pickPostCategory(cb, s, action.ID)
	case KindPickSubcategory:
		b.pickPostSubcategory(cb, s, action.ID)
	case KindPickNoSubcategory:
		b.pickPostSubcategory(cb, s, 0)
	case KindBroadcastYes:
		b.handleBroadcastChoice(cb, s, true)
	case KindBroadcastNo:
		b.handleBroadcastChoice(cb, s, false)

	default:
		b.log.Warn().Str("data", cb.Data).Msg("unknown callback")
	}
}

// ========== Экраны пользователя ==========

func (b *Bot) showCatalog(cb *tgbotapi.CallbackQuery) {
	text := "🛍 <b>Каталог товаров</b>\n\n"
	text += "📌 Цены на сайте без скидок, за скидками ко мне!\n\n"
	text += "Выбирай категорию и переходи в магазин 👇"

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, text, catalogKeyboard())
}

func (b *Bot) showMarathons(cb *tgbotapi.CallbackQuery) {
	marathons, err := storage.GetMarathons(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("marathons query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	if len(marathons) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"Пока нет доступных ссылок.", backKeyboard(Action{Kind: KindMainMenu}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"🔗 <b>Важные ссылки</b>\n\nПереходи по нужной ссылке 👇", marathonsKeyboard(marathons))
}

// showMarathon показывает ссылку. Сам показ и есть клик: счётчик и
// журнал событий обновляются здесь, ровно один раз за рендер.
func (b *Bot) showMarathon(cb *tgbotapi.CallbackQuery, marathonID int64) {
	marathon, err := storage.GetMarathon(b.db, marathonID)
	if err != nil {
		b.alertCallback(cb.ID, "Марафон не найден")
		return
	}

	if err := storage.IncrementMarathonClicks(b.db, marathonID, cb.From.ID); err != nil {
		b.log.Error().Err(err).Int64("marathon_id", marathonID).Msg("click increment failed")
	}

	text := fmt.Sprintf("%s <b>%s</b>\n\n🔗 Нажмите кнопку ниже, чтобы перейти:", marathon.Emoji, marathon.Name)
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, text, marathonLinkKeyboard(marathon.URL))
}

// showCategory — экран категории: список подкатегорий, а если их нет,
// сразу список постов.
func (b *Bot) showCategory(cb *tgbotapi.CallbackQuery, s *Session, categoryID int64) {
	category, err := storage.GetCategory(b.db, categoryID)
	if err != nil {
		b.alertCallback(cb.ID, "Категория не найдена")
		return
	}

	s.BrowseCategoryID = categoryID
	s.BrowseSubcategoryID = 0

	subcategories, err := storage.GetSubcategories(b.db, categoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("subcategories query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	title := fmt.Sprintf("📂 %s %s", category.Emoji, category.Name)

	if len(subcategories) > 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			title+"\n\nВыберите подкатегорию:", subcategoriesKeyboard(subcategories))
		return
	}

	posts, err := storage.GetPosts(b.db, categoryID, 0)
	if err != nil {
		b.log.Error().Err(err).Msg("posts query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	if len(posts) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			title+"\n\nВ этой категории пока нет постов.", backKeyboard(Action{Kind: KindMainMenu}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		title+"\n\nВыберите пост:", postsKeyboard(posts, Action{Kind: KindMainMenu}))
}

func (b *Bot) showSubcategoryPosts(cb *tgbotapi.CallbackQuery, s *Session, subcategoryID int64) {
	subcategory, err := storage.GetSubcategory(b.db, subcategoryID)
	if err != nil {
		b.alertCallback(cb.ID, "Подкатегория не найдена")
		return
	}

	s.BrowseCategoryID = subcategory.CategoryID
	s.BrowseSubcategoryID = subcategoryID

	back := Action{Kind: KindBackSubcats, ID: subcategory.CategoryID}

	posts, err := storage.GetPosts(b.db, 0, subcategoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("posts query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	if len(posts) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			fmt.Sprintf("📁 %s\n\nВ этой подкатегории пока нет постов.", subcategory.Name),
			backKeyboard(back))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📁 %s\n\nВыберите пост:", subcategory.Name), postsKeyboard(posts, back))
}

// showPost — карточка поста. Показ и есть просмотр: счётчик и журнал
// обновляются при каждом рендере.
func (b *Bot) showPost(cb *tgbotapi.CallbackQuery, s *Session, postID int64) {
	post, err := storage.GetPost(b.db, postID)
	if err != nil {
		b.alertCallback(cb.ID, "Пост не найден")
		return
	}

	if err := storage.IncrementPostViews(b.db, postID, cb.From.ID); err != nil {
		b.log.Error().Err(err).Int64("post_id", postID).Msg("view increment failed")
	}

	text := fmt.Sprintf("<b>%s</b>\n\n%s\n\n👁 Просмотров: %d", post.Title, post.Description, post.Views+1)

	// Назад — туда, откуда пришли: к подкатегориям или в главное меню.
	back := Action{Kind: KindMainMenu}
	if post.SubcategoryID != nil {
		back = Action{Kind: KindBackSubcats, ID: post.CategoryID}
	}
	kb := backKeyboard(back)

	// Пост с медиа нельзя отрисовать через edit текстового сообщения:
	// старый экран удаляется, карточка уходит новым сообщением.
	b.send(tgbotapi.NewDeleteMessage(cb.Message.Chat.ID, cb.Message.MessageID))

	switch {
	case post.MediaType == database.MediaPhoto && post.MediaFileID != "":
		photo := tgbotapi.NewPhoto(cb.Message.Chat.ID, tgbotapi.FileID(post.MediaFileID))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = kb
		b.send(photo)
	case post.MediaType == database.MediaVideo && post.MediaFileID != "":
		video := tgbotapi.NewVideo(cb.Message.Chat.ID, tgbotapi.FileID(post.MediaFileID))
		video.Caption = text
		video.ParseMode = tgbotapi.ModeHTML
		video.ReplyMarkup = kb
		b.send(video)
	default:
		b.sendWithKeyboard(cb.Message.Chat.ID, text, kb)
	}
}
