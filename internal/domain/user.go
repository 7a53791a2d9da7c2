package domain

import "time"

// User represents an author account. Guest accounts exist so readers can
// browse with a session but are blocked from every write operation.
type User struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FullName  string    `gorm:"column:full_name;type:varchar(100)" json:"full_name"`
	Username  string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password  string    `gorm:"column:password;type:varchar(255)" json:"-"`
	Avatar    *string   `gorm:"column:avatar;type:varchar(500)" json:"avatar,omitempty"`
	Bio       *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	IsGuest   bool      `gorm:"column:is_guest;default:false" json:"is_guest"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Email    string  `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	IsGuest  bool    `json:"is_guest,omitempty"`
}

// ToResponse strips credentials from a user record.
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Name:     u.FullName,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
		IsGuest:  u.IsGuest,
	}
}

// AuthorResponse is the author card attached to articles and author pages.
type AuthorResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Avatar       *string `json:"avatar,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	ArticleCount int64   `json:"article_count,omitempty"`
}

// ToAuthor builds the author card view.
func (u *User) ToAuthor() *AuthorResponse {
	return &AuthorResponse{
		ID:       u.ID,
		Name:     u.FullName,
		Username: u.Username,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
	}
}
