package domain

import "time"

// Comment is a reader comment on an article.
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint64    `gorm:"column:article_id;index" json:"article_id"`
	UserID    uint64    `gorm:"column:user_id;index" json:"user_id"`
	Author    *User     `gorm:"foreignKey:UserID" json:"-"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// CommentResponse is a comment with its author card.
type CommentResponse struct {
	ID        uint64          `json:"id"`
	ArticleID uint64          `json:"article_id"`
	Content   string          `json:"content"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToResponse projects a comment for the API.
func (c *Comment) ToResponse() *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		ArticleID: c.ArticleID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = c.Author.ToAuthor()
	}
	return resp
}
