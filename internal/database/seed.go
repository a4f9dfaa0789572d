package database

import (
	"database/sql"
	"errors"
	"fmt"
)

var seedCategories = []Category{
	{Name: "Бизнес", Emoji: "🏢"},
	{Name: "Питание", Emoji: "🍽"},
	{Name: "Здоровье", Emoji: "💪"},
}

var seedMarathons = []Marathon{
	{Name: "Иду в лс к Грошевой", URL: "http://t.me/groshevatanka", Emoji: "➡️"},
	{Name: "Стать клиентом", URL: "https://nlstar.com/ref/ZeTJmV/", Emoji: "➡️"},
	{Name: "Стать партнёром", URL: "https://nlstar.com/ref/HnDPwC/", Emoji: "➡️"},
	{Name: "День открытых дверей", URL: "https://t.me/+pMgLQZGx4p5mYjk6", Emoji: "➡️"},
}

// Seed добавляет стартовые категории и восстанавливает базовый набор
// марафонов. Вызывается на каждом старте: уже существующие записи не
// трогаются и не дублируются (сверка по имени).
func Seed(db *sql.DB) error {
	for _, c := range seedCategories {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO categories (name, emoji) VALUES (?, ?)",
			c.Name, c.Emoji,
		); err != nil {
			return fmt.Errorf("seed категории %q: %w", c.Name, err)
		}
	}

	return RestoreMarathons(db)
}

// RestoreMarathons досоздаёт удалённые марафоны из базового набора.
func RestoreMarathons(db *sql.DB) error {
	for _, m := range seedMarathons {
		var id int64
		err := db.QueryRow("SELECT id FROM marathons WHERE name = ?", m.Name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := db.Exec(
				"INSERT INTO marathons (name, url, emoji) VALUES (?, ?, ?)",
				m.Name, m.URL, m.Emoji,
			); err != nil {
				return fmt.Errorf("seed марафона %q: %w", m.Name, err)
			}
		case err != nil:
			return fmt.Errorf("проверка марафона %q: %w", m.Name, err)
		}
	}
	return nil
}
