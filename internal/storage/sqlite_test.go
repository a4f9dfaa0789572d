package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustAddCategory(t *testing.T, db *sql.DB, name, emoji string) int64 {
	t.Helper()
	require.NoError(t, AddCategory(db, name, emoji))
	categories, err := GetCategories(db)
	require.NoError(t, err)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("категория %q не нашлась после вставки", name)
	return 0
}

func TestAddUserUpsert(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, AddUser(db, 42, "old_name", "Таня"))
	require.NoError(t, AddUser(db, 42, "new_name", "Татьяна"))

	count, err := GetUsersCount(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var username string
	require.NoError(t, db.QueryRow("SELECT username FROM users WHERE user_id = 42").Scan(&username))
	assert.Equal(t, "new_name", username)
}

func TestToggleNotifications(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, AddUser(db, 42, "u", "U"))

	// По умолчанию рассылка включена.
	users, err := GetAllUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].NotificationsEnabled)

	enabled, err := ToggleNotifications(db, 42)
	require.NoError(t, err)
	assert.False(t, enabled)

	enabled, err = ToggleNotifications(db, 42)
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = ToggleNotifications(db, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := newTestDB(t)

	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	otherID := mustAddCategory(t, db, "Питание", "🍽")

	subID, err := AddSubcategory(db, "Маркетинг", catID)
	require.NoError(t, err)

	_, err = AddPost(db, database.Post{Title: "В категории", CategoryID: catID})
	require.NoError(t, err)
	_, err = AddPost(db, database.Post{Title: "В подкатегории", CategoryID: catID, SubcategoryID: &subID})
	require.NoError(t, err)
	keepID, err := AddPost(db, database.Post{Title: "Чужой", CategoryID: otherID})
	require.NoError(t, err)

	require.NoError(t, DeleteCategory(db, catID))

	// Категория, её подкатегории и посты исчезают вместе.
	_, err = GetCategory(db, catID)
	assert.ErrorIs(t, err, ErrNotFound)

	subs, err := GetSubcategories(db, catID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	posts, err := GetPosts(db, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, keepID, posts[0].ID)
}

func TestDeleteSubcategoryKeepsPosts(t *testing.T) {
	db := newTestDB(t)

	catID := mustAddCategory(t, db, "Здоровье", "💪")
	subID, err := AddSubcategory(db, "Сон", catID)
	require.NoError(t, err)

	postID, err := AddPost(db, database.Post{Title: "Режим", CategoryID: catID, SubcategoryID: &subID})
	require.NoError(t, err)

	require.NoError(t, DeleteSubcategory(db, subID))

	// Пост переезжает на уровень категории, а не удаляется.
	p, err := GetPost(db, postID)
	require.NoError(t, err)
	assert.Nil(t, p.SubcategoryID)
	assert.Equal(t, catID, p.CategoryID)

	posts, err := GetPosts(db, catID, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestGetPostsSubcategoryPriority(t *testing.T) {
	db := newTestDB(t)

	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	subID, err := AddSubcategory(db, "Продажи", catID)
	require.NoError(t, err)

	_, err = AddPost(db, database.Post{Title: "Общий", CategoryID: catID})
	require.NoError(t, err)
	inSubID, err := AddPost(db, database.Post{Title: "Узкий", CategoryID: catID, SubcategoryID: &subID})
	require.NoError(t, err)

	byCat, err := GetPosts(db, catID, 0)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	bySub, err := GetPosts(db, catID, subID)
	require.NoError(t, err)
	require.Len(t, bySub, 1)
	assert.Equal(t, inSubID, bySub[0].ID)
}

func TestUpdatePostOnlyTitleAndDescription(t *testing.T) {
	db := newTestDB(t)

	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	postID, err := AddPost(db, database.Post{
		Title:       "Старое",
		Description: "Текст",
		MediaType:   database.MediaPhoto,
		MediaFileID: "file123",
		CategoryID:  catID,
	})
	require.NoError(t, err)

	require.NoError(t, UpdatePost(db, postID, "Новое", "Новый текст"))

	p, err := GetPost(db, postID)
	require.NoError(t, err)
	assert.Equal(t, "Новое", p.Title)
	assert.Equal(t, "Новый текст", p.Description)
	assert.Equal(t, database.MediaPhoto, p.MediaType)
	assert.Equal(t, "file123", p.MediaFileID)
	assert.Equal(t, catID, p.CategoryID)

	assert.ErrorIs(t, UpdatePost(db, 999, "x", "y"), ErrNotFound)
}

func TestIncrementPostViews(t *testing.T) {
	db := newTestDB(t)

	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	postID, err := AddPost(db, database.Post{Title: "П", CategoryID: catID})
	require.NoError(t, err)

	require.NoError(t, IncrementPostViews(db, postID, 1))
	require.NoError(t, IncrementPostViews(db, postID, 1))
	require.NoError(t, IncrementPostViews(db, postID, 2))

	p, err := GetPost(db, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Views)

	// Счётчик и журнал растут синхронно.
	var events int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM post_views WHERE post_id = ?", postID).Scan(&events))
	assert.Equal(t, p.Views, events)

	total, err := GetTotalViews(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestIncrementMarathonClicks(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, AddMarathon(db, "Марафон", "https://example.com", "➡️"))
	marathons, err := GetMarathons(db)
	require.NoError(t, err)
	require.Len(t, marathons, 1)
	id := marathons[0].ID

	require.NoError(t, IncrementMarathonClicks(db, id, 1))
	require.NoError(t, IncrementMarathonClicks(db, id, 2))

	m, err := GetMarathon(db, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.Clicks)

	var events int64
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM marathon_clicks WHERE marathon_id = ?", id).Scan(&events))
	assert.Equal(t, m.Clicks, events)

	total, err := GetTotalClicks(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUpdateMarathon(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, AddMarathon(db, "Старый", "https://old.example", "➡️"))
	marathons, err := GetMarathons(db)
	require.NoError(t, err)
	require.Len(t, marathons, 1)

	require.NoError(t, UpdateMarathon(db, marathons[0].ID, "Новый", "https://new.example", "🔥"))

	m, err := GetMarathon(db, marathons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Новый", m.Name)
	assert.Equal(t, "https://new.example", m.URL)
	assert.Equal(t, "🔥", m.Emoji)

	assert.ErrorIs(t, UpdateMarathon(db, 999, "x", "y", "z"), ErrNotFound)
}

func TestGetMissingEntities(t *testing.T) {
	db := newTestDB(t)

	_, err := GetPost(db, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetCategory(db, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetSubcategory(db, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = GetMarathon(db, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
