package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

func (b *Bot) showAdminMenu(cb *tgbotapi.CallbackQuery) {
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"⚙️ <b>Админ-панель</b>\n\nВыберите раздел:", adminMenuKeyboard())
}

func (b *Bot) showPostsManagement(cb *tgbotapi.CallbackQuery) {
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"📝 <b>Управление постами</b>", postsManagementKeyboard())
}

func (b *Bot) showMarathonsManagement(cb *tgbotapi.CallbackQuery) {
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"🔗 <b>Управление марафонами</b>", marathonsManagementKeyboard())
}

// ========== Посты ==========

func (b *Bot) listPostsAdmin(cb *tgbotapi.CallbackQuery) {
	posts, err := storage.GetPosts(b.db, 0, 0)
	if err != nil {
		b.log.Error().Err(err).Msg("posts query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	if len(posts) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"Постов пока нет.", backKeyboard(Action{Kind: KindAdminPosts}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"📋 <b>Список постов</b>\n\nВыберите пост для редактирования:", adminPostsKeyboard(posts))
}

func (b *Bot) showPostAdmin(cb *tgbotapi.CallbackQuery, postID int64) {
	post, err := storage.GetPost(b.db, postID)
	if err != nil {
		b.alertCallback(cb.ID, "Пост не найден")
		return
	}

	catName := "Нет"
	if category, err := storage.GetCategory(b.db, post.CategoryID); err == nil {
		catName = category.Name
	}

	subcatName := "Нет"
	if post.SubcategoryID != nil {
		if subcategory, err := storage.GetSubcategory(b.db, *post.SubcategoryID); err == nil {
			subcatName = subcategory.Name
		}
	}

	mediaName := post.MediaType
	if mediaName == "" {
		mediaName = "Нет"
	}

	text := fmt.Sprintf("<b>📝 %s</b>\n\n", post.Title)
	text += fmt.Sprintf("📄 Описание: %s\n\n", truncate(post.Description, 100))
	text += fmt.Sprintf("📁 Категория: %s\n", catName)
	text += fmt.Sprintf("📂 Подкатегория: %s\n", subcatName)
	text += fmt.Sprintf("📷 Медиа: %s\n", mediaName)
	text += fmt.Sprintf("👁 Просмотров: %d", post.Views)

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, text, postActionsKeyboard(postID))
}

func (b *Bot) deletePost(cb *tgbotapi.CallbackQuery, postID int64) {
	if err := storage.DeletePost(b.db, postID); err != nil {
		b.log.Error().Err(err).Int64("post_id", postID).Msg("post delete failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	posts, err := storage.GetPosts(b.db, 0, 0)
	if err != nil {
		b.log.Error().Err(err).Msg("posts query failed")
		return
	}
	if len(posts) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"✅ Пост удалён!\n\nПостов пока нет.", backKeyboard(Action{Kind: KindAdminPosts}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Пост удалён!\n\n📋 <b>Список постов</b>:", adminPostsKeyboard(posts))
}

// ========== Категории ==========

func (b *Bot) manageCategories(cb *tgbotapi.CallbackQuery) {
	categories, err := storage.GetCategories(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("categories query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"📁 <b>Управление категориями</b>", adminCategoriesKeyboard(categories))
}

func (b *Bot) deleteCategory(cb *tgbotapi.CallbackQuery, categoryID int64) {
	if err := storage.DeleteCategory(b.db, categoryID); err != nil {
		b.log.Error().Err(err).Int64("category_id", categoryID).Msg("category delete failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	categories, err := storage.GetCategories(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("categories query failed")
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Категория удалена!\n\n📁 <b>Управление категориями</b>", adminCategoriesKeyboard(categories))
}

// ========== Подкатегории ==========

func (b *Bot) manageSubcategories(cb *tgbotapi.CallbackQuery) {
	categories, err := storage.GetCategories(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("categories query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	if len(categories) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"Категорий пока нет.", backKeyboard(Action{Kind: KindAdminPosts}))
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(c.Emoji+" "+c.Name, Action{Kind: KindAdminSubcats, ID: c.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindAdminPosts}, "🔙 Назад"))

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"📂 Выберите категорию для управления подкатегориями:",
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showSubcategoriesAdmin(cb *tgbotapi.CallbackQuery, categoryID int64) {
	category, err := storage.GetCategory(b.db, categoryID)
	if err != nil {
		b.alertCallback(cb.ID, "Категория не найдена")
		return
	}

	subcategories, err := storage.GetSubcategories(b.db, categoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("subcategories query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("📂 Подкатегории для <b>%s</b>:", category.Name),
		adminSubcategoriesKeyboard(subcategories, categoryID))
}

func (b *Bot) deleteSubcategory(cb *tgbotapi.CallbackQuery, subcategoryID int64) {
	subcategory, err := storage.GetSubcategory(b.db, subcategoryID)
	if err != nil {
		b.alertCallback(cb.ID, "Подкатегория не найдена")
		return
	}

	if err := storage.DeleteSubcategory(b.db, subcategoryID); err != nil {
		b.log.Error().Err(err).Int64("subcategory_id", subcategoryID).Msg("subcategory delete failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	subcategories, err := storage.GetSubcategories(b.db, subcategory.CategoryID)
	if err != nil {
		b.log.Error().Err(err).Msg("subcategories query failed")
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Подкатегория удалена!", adminSubcategoriesKeyboard(subcategories, subcategory.CategoryID))
}

// ========== Марафоны ==========

func (b *Bot) listMarathonsAdmin(cb *tgbotapi.CallbackQuery) {
	marathons, err := storage.GetMarathons(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("marathons query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	if len(marathons) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"Марафонов пока нет.", backKeyboard(Action{Kind: KindAdminMarathons}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"📋 <b>Список марафонов</b>", adminMarathonsKeyboard(marathons))
}

func (b *Bot) showMarathonAdmin(cb *tgbotapi.CallbackQuery, marathonID int64) {
	marathon, err := storage.GetMarathon(b.db, marathonID)
	if err != nil {
		b.alertCallback(cb.ID, "Марафон не найден")
		return
	}

	text := fmt.Sprintf("%s <b>%s</b>\n\n", marathon.Emoji, marathon.Name)
	text += fmt.Sprintf("🔗 URL: %s\n", marathon.URL)
	text += fmt.Sprintf("👆 Кликов: %d", marathon.Clicks)

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, text, marathonActionsKeyboard(marathonID))
}

func (b *Bot) deleteMarathon(cb *tgbotapi.CallbackQuery, marathonID int64) {
	if err := storage.DeleteMarathon(b.db, marathonID); err != nil {
		b.log.Error().Err(err).Int64("marathon_id", marathonID).Msg("marathon delete failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	marathons, err := storage.GetMarathons(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("marathons query failed")
		return
	}
	if len(marathons) == 0 {
		b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
			"✅ Марафон удалён!\n\nМарафонов пока нет.", backKeyboard(Action{Kind: KindAdminMarathons}))
		return
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"✅ Марафон удалён!\n\n📋 <b>Список марафонов</b>:", adminMarathonsKeyboard(marathons))
}

// ========== Статистика и настройки ==========

func (b *Bot) showStats(cb *tgbotapi.CallbackQuery) {
	usersCount, err := storage.GetUsersCount(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("stats query failed")
		b.alertCallback(cb.ID, genericErrorText)
		return
	}
	postsCount, _ := storage.GetPostsCount(b.db)
	totalViews, _ := storage.GetTotalViews(b.db)
	totalClicks, _ := storage.GetTotalClicks(b.db)

	text := "📊 <b>Статистика бота</b>\n\n"
	text += fmt.Sprintf("👥 Пользователей: %d\n", usersCount)
	text += fmt.Sprintf("📝 Постов: %d\n", postsCount)
	text += fmt.Sprintf("👁 Всего просмотров: %d\n", totalViews)
	text += fmt.Sprintf("👆 Всего кликов по ссылкам: %d", totalClicks)

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID, text, backKeyboard(Action{Kind: KindAdminMenu}))
}

func (b *Bot) showSettings(cb *tgbotapi.CallbackQuery) {
	enabled := true
	users, err := storage.GetAllUsers(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("users query failed")
	}
	for _, u := range users {
		if u.ID == cb.From.ID {
			enabled = u.NotificationsEnabled
			break
		}
	}

	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		"⚙️ <b>Настройки</b>", settingsKeyboard(enabled))
}

func (b *Bot) toggleNotifications(cb *tgbotapi.CallbackQuery) {
	enabled, err := storage.ToggleNotifications(b.db, cb.From.ID)
	if err != nil {
		b.alertCallback(cb.ID, genericErrorText)
		return
	}

	status := "выключены ❌"
	if enabled {
		status = "включены ✅"
	}
	b.editScreen(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("⚙️ <b>Настройки</b>\n\n🔔 Уведомления %s", status), settingsKeyboard(enabled))
}
