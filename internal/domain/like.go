package domain

import "time"

// Like is one user's like on one article. The composite unique index is the
// arbiter for concurrent double-toggles: a losing duplicate insert surfaces
// as a uniqueness violation, which the service reads as "already liked".
type Like struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;uniqueIndex:idx_like_user_article" json:"user_id"`
	ArticleID uint64    `gorm:"column:article_id;uniqueIndex:idx_like_user_article" json:"article_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

// LikeResponse reports the resulting state after a toggle, for client-side
// reconciliation.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
