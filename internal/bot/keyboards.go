package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
)

// Клавиатуры — чистые функции: данные на входе, разметка на выходе.
// Пустые списки до сюда не доходят, обработчики рисуют заглушку
// с одной кнопкой «Назад» (backKeyboard).

func actionButton(label string, a Action) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, a.Encode())
}

func backRow(a Action, label string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(actionButton(label, a))
}

func backKeyboard(a Action) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow(a, "🔙 Назад"))
}

func mainMenuKeyboard(categories []database.Category, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	var catRow []tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		catRow = append(catRow, actionButton(c.Emoji+" "+c.Name, Action{Kind: KindCategory, ID: c.ID}))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if len(catRow) > 0 {
		rows = append(rows, catRow)
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(actionButton("🛍 Каталог товаров", Action{Kind: KindCatalog})),
		tgbotapi.NewInlineKeyboardRow(actionButton("🔗 Важные ссылки", Action{Kind: KindLinks})),
	)
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(actionButton("⚙️ Админка", Action{Kind: KindAdminMenu})))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

var catalogItems = []struct {
	Name string
	URL  string
}{
	{"🆕 Новинки", "https://www.nlstar.com/ref/g4A1jv/"},
	{"🛒 Весь магазин", "https://www.nlstar.com/ref/5n33hu/"},
	{"🧹 Уборка", "https://ng.nlstar.com/ru/api/referrals/ref/XdCCAZ/"},
	{"💊 БАДы и витамины", "https://www.nlstar.com/ref/Fz8gTr/"},
	{"💇 Шампуни и уход для волос", "https://www.nlstar.com/ref/aGfHXy/"},
	{"💆 Уход за лицом", "https://ng.nlstar.com/ru/api/referrals/ref/n17bKv/"},
	{"🧴 Для тела", "https://www.nlstar.com/ref/sUGDmV/"},
	{"🎁 Подарки", "https://www.nlstar.com/ref/BFCoLx/"},
	{"🥤 Коктейли", "https://www.nlstar.com/ref/4vJo4t/"},
	{"🌿 Адаптогены", "https://www.nlstar.com/ref/924P7c/"},
	{"🍬 Лакомства", "https://www.nlstar.com/ref/kg8VpL/"},
	{"🥛 Напитки", "https://www.nlstar.com/ref/cLbDQB/"},
	{"🦷 Зубные пасты", "https://www.nlstar.com/ref/tgiS58/"},
	{"💰 Выгодные наборы", "https://www.nlstar.com/ref/pfkZXF/"},
	{"👶 Для детей", "https://www.nlstar.com/ref/uPZHiC/"},
	{"👨 Для мужчин", "https://www.nlstar.com/ref/LiDFTV/"},
}

func catalogKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range catalogItems {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(item.Name, item.URL),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindMainMenu}, "🔙 Назад"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func marathonsKeyboard(marathons []database.Marathon) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range marathons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(m.Emoji+" "+m.Name, Action{Kind: KindMarathon, ID: m.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindMainMenu}, "🔙 В главное меню"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func marathonLinkKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 Перейти по ссылке", url)),
		backRow(Action{Kind: KindBackMarathons}, "🔙 Назад"),
	)
}

func subcategoriesKeyboard(subcategories []database.Subcategory) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subcategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(s.Name, Action{Kind: KindSubcategory, ID: s.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindMainMenu}, "🔙 Назад"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func postsKeyboard(posts []database.Post, back Action) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range posts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(truncate(p.Title, 50), Action{Kind: KindPost, ID: p.ID}),
		))
	}
	rows = append(rows, backRow(back, "🔙 Назад"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ========== Админка ==========

func adminMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("📝 Посты", Action{Kind: KindAdminPosts}),
			actionButton("🔗 Ссылки", Action{Kind: KindAdminMarathons}),
		),
		tgbotapi.NewInlineKeyboardRow(
			actionButton("📊 Статистика", Action{Kind: KindAdminStats}),
			actionButton("⚙️ Настройки", Action{Kind: KindAdminSettings}),
		),
		backRow(Action{Kind: KindMainMenu}, "🔙 В главное меню"),
	)
}

func postsManagementKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("➕ Добавить пост", Action{Kind: KindAddPost}),
			actionButton("📋 Список постов", Action{Kind: KindListPosts}),
		),
		tgbotapi.NewInlineKeyboardRow(
			actionButton("📁 Категории", Action{Kind: KindManageCategories}),
			actionButton("📂 Подкатегории", Action{Kind: KindManageSubcats}),
		),
		backRow(Action{Kind: KindAdminMenu}, "🔙 В админку"),
	)
}

func marathonsManagementKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("➕ Добавить марафон", Action{Kind: KindAddMarathon}),
			actionButton("📋 Список марафонов", Action{Kind: KindListMarathons}),
		),
		backRow(Action{Kind: KindAdminMenu}, "🔙 В админку"),
	)
}

func settingsKeyboard(notificationsOn bool) tgbotapi.InlineKeyboardMarkup {
	label := "🔕 Уведомления: ВЫКЛ"
	if notificationsOn {
		label = "🔔 Уведомления: ВКЛ"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(actionButton(label, Action{Kind: KindToggleNotif})),
		backRow(Action{Kind: KindAdminMenu}, "🔙 В админку"),
	)
}

func broadcastKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("📢 Разослать всем", Action{Kind: KindBroadcastYes}),
			actionButton("❌ Не рассылать", Action{Kind: KindBroadcastNo}),
		),
	)
}

func adminPostsKeyboard(posts []database.Post) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range posts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(truncate(p.Title, 40), Action{Kind: KindAdminPost, ID: p.ID}),
			actionButton("🗑", Action{Kind: KindDeletePost, ID: p.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindAdminPosts}, "🔙 Назад"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func postActionsKeyboard(postID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("✏️ Редактировать", Action{Kind: KindEditPost, ID: postID}),
			actionButton("🗑 Удалить", Action{Kind: KindDeletePost, ID: postID}),
		),
		backRow(Action{Kind: KindListPosts}, "🔙 Назад"),
	)
}

func adminCategoriesKeyboard(categories []database.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(c.Emoji+" "+c.Name, Action{Kind: KindAdminSubcats, ID: c.ID}),
			actionButton("🗑", Action{Kind: KindDeleteCategory, ID: c.ID}),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(actionButton("➕ Добавить категорию", Action{Kind: KindAddCategory})),
		backRow(Action{Kind: KindAdminPosts}, "🔙 Назад"),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminSubcategoriesKeyboard(subcategories []database.Subcategory, categoryID int64) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subcategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(s.Name, Action{Kind: KindAdminSubcats, ID: s.CategoryID}),
			actionButton("🗑", Action{Kind: KindDeleteSubcategory, ID: s.ID}),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(actionButton("➕ Добавить подкатегорию", Action{Kind: KindAddSubcategory, ID: categoryID})),
		backRow(Action{Kind: KindManageCategories}, "🔙 Назад"),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminMarathonsKeyboard(marathons []database.Marathon) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range marathons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(m.Emoji+" "+m.Name, Action{Kind: KindAdminMarathon, ID: m.ID}),
			actionButton("🗑", Action{Kind: KindDeleteMarathon, ID: m.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindAdminMarathons}, "🔙 Назад"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func marathonActionsKeyboard(marathonID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			actionButton("✏️ Редактировать", Action{Kind: KindEditMarathon, ID: marathonID}),
			actionButton("🗑 Удалить", Action{Kind: KindDeleteMarathon, ID: marathonID}),
		),
		backRow(Action{Kind: KindListMarathons}, "🔙 Назад"),
	)
}

// ========== Выбор в визардах ==========

func selectCategoryKeyboard(categories []database.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(c.Emoji+" "+c.Name, Action{Kind: KindPickCategory, ID: c.ID}),
		))
	}
	rows = append(rows, backRow(Action{Kind: KindCancel}, "❌ Отмена"))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func selectSubcategoryKeyboard(subcategories []database.Subcategory) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range subcategories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			actionButton(s.Name, Action{Kind: KindPickSubcategory, ID: s.ID}),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(actionButton("⏩ Без подкатегории", Action{Kind: KindPickNoSubcategory})),
		backRow(Action{Kind: KindCancel}, "❌ Отмена"),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func noSubcategoriesKeyboard(categoryID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(actionButton("⏩ Без подкатегории", Action{Kind: KindPickNoSubcategory})),
		tgbotapi.NewInlineKeyboardRow(actionButton("➕ Создать подкатегорию", Action{Kind: KindCreateSubcatHere, ID: categoryID})),
		backRow(Action{Kind: KindCancel}, "❌ Отмена"),
	)
}
