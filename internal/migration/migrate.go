package migration

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for every table and seeds demo users if the users
// table is empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Article{},
		&domain.ArticleBlock{},
		&domain.Like{},
		&domain.Comment{},
		&domain.File{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count == 0 {
		return seedUsers(db)
	}

	return nil
}

type seedUser struct {
	fullName string
	username string
	email    string
	avatar   string
	bio      string
}

var demoUsers = []seedUser{
	{"John Doe", "johndoe", "john@example.com",
		"https://randomuser.me/api/portraits/men/1.jpg",
		"Full-stack developer passionate about React and Node.js. I love building web applications and sharing knowledge with the community."},
	{"Jane Smith", "janesmith", "jane@example.com",
		"https://randomuser.me/api/portraits/women/2.jpg",
		"UI/UX designer and front-end developer. I specialize in creating beautiful and functional user interfaces using modern web technologies."},
	{"Bob Johnson", "bobjohnson", "bob@example.com",
		"https://randomuser.me/api/portraits/men/3.jpg",
		"Backend engineer with expertise in database optimization and API design. I enjoy solving complex problems and mentoring junior developers."},
	{"Alice Williams", "alicewilliams", "alice@example.com",
		"https://randomuser.me/api/portraits/women/4.jpg",
		"DevOps specialist focused on CI/CD pipelines and cloud infrastructure. I help teams deliver software faster and more reliably."},
	{"Charlie Brown", "charliebrown", "charlie@example.com",
		"https://randomuser.me/api/portraits/men/5.jpg",
		"Mobile app developer with experience in React Native and Flutter. I build cross-platform applications that feel native on every device."},
	{"Diana Miller", "dianamiller", "diana@example.com",
		"https://randomuser.me/api/portraits/women/6.jpg",
		"Data scientist specializing in machine learning and AI. I transform data into insights and build predictive models for business applications."},
	{"Ethan Davis", "ethandavis", "ethan@example.com",
		"https://randomuser.me/api/portraits/men/7.jpg",
		"Security engineer focused on web application security. I identify vulnerabilities and implement safeguards to protect user data."},
	{"Fiona Wilson", "fionawilson", "fiona@example.com",
		"https://randomuser.me/api/portraits/women/8.jpg",
		"Technical writer and developer advocate. I create documentation, tutorials, and educational content for developers of all skill levels."},
}

func seedUsers(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, su := range demoUsers {
		avatar := su.avatar
		bio := su.bio
		user := domain.User{
			FullName: su.fullName,
			Username: su.username,
			Email:    su.email,
			Password: string(hash),
			Avatar:   &avatar,
			Bio:      &bio,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info().Int("count", len(demoUsers)).Msg("seeded demo users")
	return nil
}
