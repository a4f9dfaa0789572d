package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
)

// ErrNotFound возвращается, когда запрошенная сущность уже удалена.
var ErrNotFound = errors.New("запись не найдена")

// ========== Пользователи ==========

// AddUser создаёт пользователя или обновляет имя существующего.
func AddUser(db *sql.DB, userID int64, username, firstName string) error {
	_, err := db.Exec(`
INSERT INTO users (user_id, username, first_name) VALUES (?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`,
		userID, username, firstName)
	return err
}

func GetAllUsers(db *sql.DB) ([]database.User, error) {
	rows, err := db.Query("SELECT user_id, notifications_enabled FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []database.User
	for rows.Next() {
		var u database.User
		var enabled int
		if err := rows.Scan(&u.ID, &enabled); err != nil {
			return nil, err
		}
		u.NotificationsEnabled = enabled == 1
		users = append(users, u)
	}
	return users, rows.Err()
}

func GetUsersCount(db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// ToggleNotifications переключает флаг подписки и возвращает новое значение.
func ToggleNotifications(db *sql.DB, userID int64) (bool, error) {
	var enabled int
	err := db.QueryRow(
		"SELECT notifications_enabled FROM users WHERE user_id = ?", userID,
	).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	newValue := 0
	if enabled == 0 {
		newValue = 1
	}
	_, err = db.Exec(
		"UPDATE users SET notifications_enabled = ? WHERE user_id = ?",
		newValue, userID,
	)
	return newValue == 1, err
}

// ========== Категории ==========

func GetCategories(db *sql.DB) ([]database.Category, error) {
	rows, err := db.Query("SELECT id, name, emoji FROM categories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []database.Category
	for rows.Next() {
		var c database.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func GetCategory(db *sql.DB, id int64) (database.Category, error) {
	var c database.Category
	err := db.QueryRow(
		"SELECT id, name, emoji FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Emoji)
	if errors.Is(err, sql.ErrNoRows) {
		return database.Category{}, ErrNotFound
	}
	return c, err
}

func AddCategory(db *sql.DB, name, emoji string) error {
	_, err := db.Exec("INSERT INTO categories (name, emoji) VALUES (?, ?)", name, emoji)
	return err
}

// DeleteCategory удаляет категорию вместе с её подкатегориями и постами.
func DeleteCategory(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM posts WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("удаление постов категории: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM subcategories WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("удаление подкатегорий: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM categories WHERE id = ?", id); err != nil {
		return fmt.Errorf("удаление категории: %w", err)
	}
	return tx.Commit()
}

// ========== Подкатегории ==========

func GetSubcategories(db *sql.DB, categoryID int64) ([]database.Subcategory, error) {
	rows, err := db.Query(
		"SELECT id, name, category_id FROM subcategories WHERE category_id = ?", categoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subcategories []database.Subcategory
	for rows.Next() {
		var s database.Subcategory
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, s)
	}
	return subcategories, rows.Err()
}

func GetSubcategory(db *sql.DB, id int64) (database.Subcategory, error) {
	var s database.Subcategory
	err := db.QueryRow(
		"SELECT id, name, category_id FROM subcategories WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &s.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return database.Subcategory{}, ErrNotFound
	}
	return s, err
}

func AddSubcategory(db *sql.DB, name string, categoryID int64) (int64, error) {
	result, err := db.Exec(
		"INSERT INTO subcategories (name, category_id) VALUES (?, ?)", name, categoryID,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// DeleteSubcategory удаляет подкатегорию. Её посты не удаляются,
// а становятся постами уровня категории.
func DeleteSubcategory(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE posts SET subcategory_id = NULL WHERE subcategory_id = ?", id); err != nil {
		return fmt.Errorf("отвязка постов: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM subcategories WHERE id = ?", id); err != nil {
		return fmt.Errorf("удаление подкатегории: %w", err)
	}
	return tx.Commit()
}

// ========== Посты ==========

// GetPosts возвращает посты подкатегории, категории или все подряд.
// Ненулевой subcategoryID имеет приоритет над categoryID.
func GetPosts(db *sql.DB, categoryID, subcategoryID int64) ([]database.Post, error) {
	const fields = "id, title, description, media_type, media_file_id, category_id, subcategory_id, views"

	var rows *sql.Rows
	var err error
	switch {
	case subcategoryID != 0:
		rows, err = db.Query("SELECT "+fields+" FROM posts WHERE subcategory_id = ?", subcategoryID)
	case categoryID != 0:
		rows, err = db.Query("SELECT "+fields+" FROM posts WHERE category_id = ?", categoryID)
	default:
		rows, err = db.Query("SELECT " + fields + " FROM posts")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []database.Post
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func GetPost(db *sql.DB, id int64) (database.Post, error) {
	row := db.QueryRow(`
SELECT id, title, description, media_type, media_file_id, category_id, subcategory_id, views
FROM posts WHERE id = ?`, id)

	p, err := scanPost(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return database.Post{}, ErrNotFound
	}
	return p, err
}

func scanPost(scan func(...any) error) (database.Post, error) {
	var p database.Post
	var subcategoryID sql.NullInt64
	err := scan(&p.ID, &p.Title, &p.Description, &p.MediaType, &p.MediaFileID,
		&p.CategoryID, &subcategoryID, &p.Views)
	if err != nil {
		return database.Post{}, err
	}
	if subcategoryID.Valid {
		p.SubcategoryID = &subcategoryID.Int64
	}
	return p, nil
}

func AddPost(db *sql.DB, p database.Post) (int64, error) {
	var subcategoryID any
	if p.SubcategoryID != nil {
		subcategoryID = *p.SubcategoryID
	}
	result, err := db.Exec(`
INSERT INTO posts (title, description, media_type, media_file_id, category_id, subcategory_id)
VALUES (?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.MediaType, p.MediaFileID, p.CategoryID, subcategoryID)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdatePost меняет только название и описание. Медиа, категория и
// подкатегория остаются прежними.
func UpdatePost(db *sql.DB, id int64, title, description string) error {
	result, err := db.Exec(
		"UPDATE posts SET title = ?, description = ? WHERE id = ?",
		title, description, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func DeletePost(db *sql.DB, id int64) error {
	_, err := db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

// IncrementPostViews увеличивает счётчик просмотров и пишет событие
// в журнал одним коммитом.
func IncrementPostViews(db *sql.DB, postID, userID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE posts SET views = views + 1 WHERE id = ?", postID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO post_views (post_id, user_id) VALUES (?, ?)", postID, userID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func GetPostsCount(db *sql.DB) (int64, error) {
	var count int64
	err := db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

func GetTotalViews(db *sql.DB) (int64, error) {
	var total int64
	err := db.QueryRow("SELECT COALESCE(SUM(views), 0) FROM posts").Scan(&total)
	return total, err
}

// ========== Марафоны ==========

func GetMarathons(db *sql.DB) ([]database.Marathon, error) {
	rows, err := db.Query("SELECT id, name, url, emoji, clicks FROM marathons")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marathons []database.Marathon
	for rows.Next() {
		var m database.Marathon
		if err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.Emoji, &m.Clicks); err != nil {
			return nil, err
		}
		marathons = append(marathons, m)
	}
	return marathons, rows.Err()
}

func GetMarathon(db *sql.DB, id int64) (database.Marathon, error) {
	var m database.Marathon
	err := db.QueryRow(
		"SELECT id, name, url, emoji, clicks FROM marathons WHERE id = ?", id,
	).Scan(&m.ID, &m.Name, &m.URL, &m.Emoji, &m.Clicks)
	if errors.Is(err, sql.ErrNoRows) {
		return database.Marathon{}, ErrNotFound
	}
	return m, err
}

func AddMarathon(db *sql.DB, name, url, emoji string) error {
	_, err := db.Exec(
		"INSERT INTO marathons (name, url, emoji) VALUES (?, ?, ?)", name, url, emoji,
	)
	return err
}

func UpdateMarathon(db *sql.DB, id int64, name, url, emoji string) error {
	result, err := db.Exec(
		"UPDATE marathons SET name = ?, url = ?, emoji = ? WHERE id = ?",
		name, url, emoji, id,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteMarathon(db *sql.DB, id int64) error {
	_, err := db.Exec("DELETE FROM marathons WHERE id = ?", id)
	return err
}

// IncrementMarathonClicks увеличивает счётчик кликов и пишет событие
// в журнал одним коммитом.
func IncrementMarathonClicks(db *sql.DB, marathonID, userID int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE marathons SET clicks = clicks + 1 WHERE id = ?", marathonID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO marathon_clicks (marathon_id, user_id) VALUES (?, ?)", marathonID, userID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func GetTotalClicks(db *sql.DB) (int64, error) {
	var total int64
	err := db.QueryRow("SELECT COALESCE(SUM(clicks), 0) FROM marathons").Scan(&total)
	return total, err
}
