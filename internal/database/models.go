package database

import "time"

const (
	MediaNone  = ""
	MediaPhoto = "photo"
	MediaVideo = "video"
)

type User struct {
	ID                   int64
	Username             string
	FirstName            string
	JoinedAt             time.Time
	NotificationsEnabled bool
}

type Category struct {
	ID    int64
	Name  string
	Emoji string
}

type Subcategory struct {
	ID         int64
	Name       string
	CategoryID int64
}

type Post struct {
	ID            int64
	Title         string
	Description   string
	MediaType     string
	MediaFileID   string
	CategoryID    int64
	SubcategoryID *int64
	Views         int64
	CreatedAt     time.Time
}

type Marathon struct {
	ID        int64
	Name      string
	URL       string
	Emoji     string
	Clicks    int64
	CreatedAt time.Time
}
