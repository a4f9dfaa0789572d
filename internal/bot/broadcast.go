package bot

import (
	"fmt"
	"math/rand"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

// Зазывающие сообщения для рассылки по категориям.
var teaserPools = map[string][]string{
	"Бизнес": {
		"🔥 Новый пост о бизнесе! Узнай секреты успеха 💼",
		"💡 Свежие идеи для твоего бизнеса уже ждут тебя!",
		"🚀 Хочешь расти? Смотри новый материал!",
		"📈 Полезная информация для предпринимателей!",
		"💪 Время действовать! Новый пост специально для тебя!",
	},
	"Питание": {
		"🍽 Новый рецепт здорового питания! Попробуй!",
		"🥗 Узнай, как питаться правильно и вкусно!",
		"🌿 Секреты здорового питания в новом посте!",
		"😋 Вкусно и полезно — смотри новый материал!",
		"🍎 Заботься о себе! Новая полезная информация!",
	},
	"Здоровье": {
		"💪 Новый пост о здоровье! Береги себя!",
		"🏃 Узнай, как быть в форме каждый день!",
		"❤️ Здоровье — это главное! Смотри новый материал!",
		"🌟 Полезные советы для твоего здоровья!",
		"✨ Время позаботиться о себе! Новый пост для тебя!",
	},
}

const genericTeaser = "🔥 Новый пост для тебя! Смотри скорее!"

func pickTeaser(categoryName string) string {
	pool, ok := teaserPools[categoryName]
	if !ok || len(pool) == 0 {
		return genericTeaser
	}
	return pool[rand.Intn(len(pool))]
}

// broadcastPost рассылает пост всем подписанным пользователям.
// Ошибка доставки одному получателю (бот заблокирован и т.п.) не
// прерывает рассылку. Возвращает число успешных доставок.
func (b *Bot) broadcastPost(post database.Post) int {
	categoryName := ""
	if category, err := storage.GetCategory(b.db, post.CategoryID); err == nil {
		categoryName = category.Name
	}

	users, err := storage.GetAllUsers(b.db)
	if err != nil {
		b.log.Error().Err(err).Msg("broadcast: user list failed")
		return 0
	}

	sent := 0
	for _, u := range users {
		if !u.NotificationsEnabled {
			continue
		}
		if b.sendPostTo(u.ID, post, categoryName) {
			sent++
		}
	}

	b.log.Info().Int64("post_id", post.ID).Int("sent", sent).Msg("broadcast finished")
	return sent
}

func (b *Bot) sendPostTo(chatID int64, post database.Post, categoryName string) bool {
	text := fmt.Sprintf("%s\n\n<b>%s</b>\n\n%s", pickTeaser(categoryName), post.Title, post.Description)

	var msg tgbotapi.Chattable
	switch {
	case post.MediaType == database.MediaPhoto && post.MediaFileID != "":
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(post.MediaFileID))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		msg = photo
	case post.MediaType == database.MediaVideo && post.MediaFileID != "":
		video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(post.MediaFileID))
		video.Caption = text
		video.ParseMode = tgbotapi.ModeHTML
		msg = video
	default:
		m := tgbotapi.NewMessage(chatID, text)
		m.ParseMode = tgbotapi.ModeHTML
		msg = m
	}

	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("broadcast delivery failed")
		return false
	}
	return true
}
