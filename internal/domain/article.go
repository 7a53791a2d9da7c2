package domain

import (
	"time"

	"github.com/alihfala/mando-articles/internal/content"
)

// Article is a published or draft piece. Content holds the block document
// exactly as the editor serialized it; Blocks is the parallel flattened
// projection kept for ordering metadata, replaced wholesale on every save.
type Article struct {
	ID            uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Slug          string         `gorm:"column:slug;type:varchar(200);uniqueIndex" json:"slug"`
	Title         string         `gorm:"column:title;type:varchar(255)" json:"title"`
	Excerpt       *string        `gorm:"column:excerpt;type:varchar(500)" json:"excerpt,omitempty"`
	Content       string         `gorm:"column:content;type:mediumtext" json:"-"`
	FeaturedImage *string        `gorm:"column:featured_image;type:varchar(500)" json:"featured_image,omitempty"`
	Published     bool           `gorm:"column:published;default:false;index" json:"published"`
	AuthorID      uint64         `gorm:"column:author_id;index" json:"author_id"`
	Author        *User          `gorm:"foreignKey:AuthorID" json:"-"`
	Blocks        []ArticleBlock `gorm:"foreignKey:ArticleID" json:"-"`
	Likes         []Like         `gorm:"foreignKey:ArticleID" json:"-"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }

// ArticleBlock is one row of the flattened block projection: the block's
// variant payload keyed by position. Row ids are storage-assigned and carry
// no relation to the editor-session block ids inside Content.
type ArticleBlock struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint64    `gorm:"column:article_id;index" json:"article_id"`
	Type      string    `gorm:"column:type;type:varchar(30)" json:"type"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	OrderNum  int       `gorm:"column:order_num" json:"order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ArticleBlock) TableName() string { return "article_blocks" }

// LikeInfo is the compact like row attached to article responses, enough for
// a client to derive count and membership.
type LikeInfo struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
}

// ArticleResponse is the article view returned by list and detail endpoints.
type ArticleResponse struct {
	ID            uint64            `json:"id"`
	Slug          string            `json:"slug"`
	Title         string            `json:"title"`
	Excerpt       *string           `json:"excerpt,omitempty"`
	Content       *content.Document `json:"content,omitempty"`
	Nodes         []content.Node    `json:"nodes,omitempty"`
	FeaturedImage *string           `json:"featured_image,omitempty"`
	Published     bool              `json:"published"`
	Author        *AuthorResponse   `json:"author,omitempty"`
	Likes         []LikeInfo        `json:"likes,omitempty"`
	LikeCount     int               `json:"like_count"`
	// Liked reports whether the requesting user likes this article. Always
	// false for anonymous requests; never cached.
	Liked bool `json:"liked"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// MarkLikedBy sets Liked according to whether userID appears in Likes.
// A zero userID means an anonymous viewer and clears the flag.
func (r *ArticleResponse) MarkLikedBy(userID uint64) {
	r.Liked = false
	if userID == 0 {
		return
	}
	for _, l := range r.Likes {
		if l.UserID == userID {
			r.Liked = true
			return
		}
	}
}

// ToResponse projects an article for the API. withBody controls whether the
// parsed document and its rendered nodes are included (detail) or left out
// (list items carry only metadata and excerpt).
func (a *Article) ToResponse(withBody bool) *ArticleResponse {
	resp := &ArticleResponse{
		ID:            a.ID,
		Slug:          a.Slug,
		Title:         a.Title,
		Excerpt:       a.Excerpt,
		FeaturedImage: a.FeaturedImage,
		Published:     a.Published,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Author != nil {
		resp.Author = a.Author.ToAuthor()
	}
	for _, like := range a.Likes {
		resp.Likes = append(resp.Likes, LikeInfo{ID: like.ID, UserID: like.UserID})
	}
	resp.LikeCount = len(a.Likes)
	if withBody {
		doc, _ := content.ParseContent([]byte(a.Content))
		resp.Content = doc
		resp.Nodes = content.RenderDocument(doc)
	}
	return resp
}
