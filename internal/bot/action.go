package bot

import (
	"errors"
	"strconv"
	"strings"
)

// Kind — вид действия, закодированного в callback-данных кнопки.
type Kind string

const (
	// Навигация пользователя
	KindMainMenu      Kind = "menu_main"
	KindCatalog       Kind = "menu_catalog"
	KindLinks         Kind = "menu_links"
	KindCategory      Kind = "cat"
	KindSubcategory   Kind = "subcat"
	KindBackSubcats   Kind = "back_subcats"
	KindPost          Kind = "post"
	KindMarathon      Kind = "marathon"
	KindBackMarathons Kind = "back_marathons"

	// Админка
	KindAdminMenu         Kind = "menu_admin"
	KindAdminPosts        Kind = "admin_posts"
	KindAdminMarathons    Kind = "admin_marathons"
	KindAdminStats        Kind = "admin_stats"
	KindAdminSettings     Kind = "admin_settings"
	KindToggleNotif       Kind = "toggle_notif"
	KindListPosts         Kind = "list_posts"
	KindAdminPost         Kind = "admin_post"
	KindDeletePost        Kind = "del_post"
	KindEditPost          Kind = "edit_post"
	KindManageCategories  Kind = "manage_cats"
	KindAddCategory       Kind = "add_category"
	KindDeleteCategory    Kind = "del_cat"
	KindManageSubcats     Kind = "manage_subcats"
	KindAdminSubcats      Kind = "admin_subcats"
	KindAddSubcategory    Kind = "add_subcat"
	KindDeleteSubcategory Kind = "del_subcat"
	KindListMarathons     Kind = "list_marathons"
	KindAdminMarathon     Kind = "admin_marathon"
	KindDeleteMarathon    Kind = "del_marathon"
	KindEditMarathon      Kind = "edit_marathon"

	// Шаги визардов
	KindAddPost           Kind = "add_post"
	KindAddMarathon       Kind = "add_marathon"
	KindPickCategory      Kind = "pick_cat"
	KindPickSubcategory   Kind = "pick_subcat"
	KindPickNoSubcategory Kind = "pick_subcat_none"
	KindCreateSubcatHere  Kind = "create_subcat"
	KindBroadcastYes      Kind = "broadcast_yes"
	KindBroadcastNo       Kind = "broadcast_no"
	KindCancel            Kind = "cancel"
)

// Action — разобранное действие кнопки: вид плюс необязательный ID
// сущности. В строку превращается только на границе с Telegram.
type Action struct {
	Kind Kind
	ID   int64
}

var errBadAction = errors.New("некорректные callback-данные")

func (a Action) Encode() string {
	if a.ID == 0 {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + strconv.FormatInt(a.ID, 10)
}

func ParseAction(data string) (Action, error) {
	if data == "" {
		return Action{}, errBadAction
	}
	kind, raw, found := strings.Cut(data, ":")
	if !found {
		return Action{Kind: Kind(kind)}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return Action{}, errBadAction
	}
	return Action{Kind: Kind(kind), ID: id}, nil
}

// adminActions — действия, доступные только администраторам. Проверка
// выполняется до любой мутации.
var adminActions = map[Kind]struct{}{
	KindAdminMenu:         {},
	KindAdminPosts:        {},
	KindAdminMarathons:    {},
	KindAdminStats:        {},
	KindAdminSettings:     {},
	KindToggleNotif:       {},
	KindListPosts:         {},
	KindAdminPost:         {},
	KindDeletePost:        {},
	KindEditPost:          {},
	KindManageCategories:  {},
	KindAddCategory:       {},
	KindDeleteCategory:    {},
	KindManageSubcats:     {},
	KindAdminSubcats:      {},
	KindAddSubcategory:    {},
	KindDeleteSubcategory: {},
	KindListMarathons:     {},
	KindAdminMarathon:     {},
	KindDeleteMarathon:    {},
	KindEditMarathon:      {},
	KindAddPost:           {},
	KindAddMarathon:       {},
	KindPickCategory:      {},
	KindPickSubcategory:   {},
	KindPickNoSubcategory: {},
	KindCreateSubcatHere:  {},
	KindBroadcastYes:      {},
	KindBroadcastNo:       {},
}

func (a Action) adminOnly() bool {
	_, ok := adminActions[a.Kind]
	return ok
}
