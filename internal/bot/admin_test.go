package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nameprogrammeronpy/Tgroshewa/internal/database"
	"github.com/nameprogrammeronpy/Tgroshewa/internal/storage"
)

func TestDeleteCategoryRemovesPostsAndSubcategories(t *testing.T) {
	b, api, db := newTestBot(t, adminID)
	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	subID, err := storage.AddSubcategory(db, "Продажи", catID)
	require.NoError(t, err)
	_, err = storage.AddPost(db, database.Post{Title: "Пост", CategoryID: catID, SubcategoryID: &subID})
	require.NoError(t, err)

	sendCallback(b, callback(adminID, Action{Kind: KindDeleteCategory, ID: catID}.Encode()))

	_, err = storage.GetCategory(db, catID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Zero(t, postsCount(t, db))
	assert.Contains(t, api.lastText(t), "Категория удалена")
}

func TestDeleteSubcategoryMovesPostsUp(t *testing.T) {
	b, _, db := newTestBot(t, adminID)
	catID := mustAddCategory(t, db, "Питание", "🍽")
	subID, err := storage.AddSubcategory(db, "Рецепты", catID)
	require.NoError(t, err)
	postID, err := storage.AddPost(db, database.Post{Title: "Пост", CategoryID: catID, SubcategoryID: &subID})
	require.NoError(t, err)

	sendCallback(b, callback(adminID, Action{Kind: KindDeleteSubcategory, ID: subID}.Encode()))

	p, err := storage.GetPost(db, postID)
	require.NoError(t, err)
	assert.Nil(t, p.SubcategoryID)
}

func TestDeletePostFromList(t *testing.T) {
	b, api, db := newTestBot(t, adminID)
	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	postID, err := storage.AddPost(db, database.Post{Title: "Пост", CategoryID: catID})
	require.NoError(t, err)

	sendCallback(b, callback(adminID, Action{Kind: KindDeletePost, ID: postID}.Encode()))

	assert.Zero(t, postsCount(t, db))
	assert.Contains(t, api.lastText(t), "Пост удалён")
}

func TestStatsScreen(t *testing.T) {
	b, api, db := newTestBot(t, adminID)
	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	require.NoError(t, storage.AddUser(db, 1, "a", "A"))
	require.NoError(t, storage.AddUser(db, 2, "b", "B"))
	postID, err := storage.AddPost(db, database.Post{Title: "Пост", CategoryID: catID})
	require.NoError(t, err)
	require.NoError(t, storage.IncrementPostViews(db, postID, 1))
	require.NoError(t, storage.IncrementPostViews(db, postID, 2))

	sendCallback(b, callback(adminID, "admin_stats"))

	text := api.lastText(t)
	assert.Contains(t, text, "Пользователей: 2")
	assert.Contains(t, text, "Постов: 1")
	assert.Contains(t, text, "просмотров: 2")
}

func TestToggleNotificationsFromSettings(t *testing.T) {
	b, api, db := newTestBot(t, adminID)
	sendMessage(b, textMsg(adminID, "/start"))

	sendCallback(b, callback(adminID, "toggle_notif"))
	assert.Contains(t, api.lastText(t), "выключены")

	users, err := storage.GetAllUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.False(t, users[0].NotificationsEnabled)

	sendCallback(b, callback(adminID, "toggle_notif"))
	assert.Contains(t, api.lastText(t), "включены")
}

func TestListPostsEmptyState(t *testing.T) {
	b, api, _ := newTestBot(t, adminID)

	sendCallback(b, callback(adminID, "list_posts"))
	assert.Contains(t, api.lastText(t), "Постов пока нет")
}

func TestShowPostAdminMetadata(t *testing.T) {
	b, api, db := newTestBot(t, adminID)
	catID := mustAddCategory(t, db, "Бизнес", "🏢")
	postID, err := storage.AddPost(db, database.Post{
		Title: "Пост", Description: "Описание", MediaType: database.MediaPhoto,
		MediaFileID: "f1", CategoryID: catID,
	})
	require.NoError(t, err)

	sendCallback(b, callback(adminID, Action{Kind: KindAdminPost, ID: postID}.Encode()))

	text := api.lastText(t)
	assert.Contains(t, text, "Категория: Бизнес")
	assert.Contains(t, text, "Подкатегория: Нет")
	assert.Contains(t, text, "Медиа: photo")
}
