// Command seed fills the database with demo articles. Each article body is
// composed through an editor session, block by block, the same way the
// editing UI produces documents.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/config"
	"github.com/alihfala/mando-articles/internal/content"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/editor"
	"github.com/alihfala/mando-articles/internal/migration"
	"github.com/alihfala/mando-articles/internal/repository"
	pkglogger "github.com/alihfala/mando-articles/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type topic struct {
	title    string
	category string
}

var topics = []topic{
	{"Getting Started with Next.js", "Web Development"},
	{"Understanding React Hooks", "React"},
	{"Building Responsive UIs with Tailwind CSS", "CSS"},
	{"Database Management with Prisma", "Database"},
	{"Authentication Strategies for Modern Apps", "Security"},
	{"Optimizing API Performance", "Backend"},
	{"Testing React Components", "Testing"},
	{"State Management with Redux", "React"},
	{"Building a Blog with Next.js", "Web Development"},
	{"Understanding TypeScript Generics", "TypeScript"},
	{"SEO Best Practices for Next.js", "SEO"},
	{"Deploying Next.js Apps to Vercel", "DevOps"},
	{"Real-time Applications with WebSockets", "Web Development"},
	{"GraphQL vs REST APIs", "API"},
	{"Creating Custom React Hooks", "React"},
	{"Progressive Web Apps (PWAs)", "Web Development"},
	{"Animations in React with Framer Motion", "UI/UX"},
	{"Serverless Functions with Next.js", "Backend"},
	{"Implementing Dark Mode in Your App", "UI/UX"},
	{"Securing API Routes in Next.js", "Security"},
}

const (
	paraOne   = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. Nulla facilisi. Maecenas vestibulum fringilla dui nec tincidunt. Cras volutpat, risus vitae tincidunt varius, nisi erat ultricies magna, in laoreet libero lacus vitae ante."
	paraTwo   = "Pellentesque habitant morbi tristique senectus et netus et malesuada fames ac turpis egestas. Donec at ipsum vel lorem varius ultrices. Sed eget ex risus. Fusce luctus rhoncus lectus, non dictum massa aliquam quis."
	paraThree = "Mauris vitae augue et magna lacinia tempor. In hac habitasse platea dictumst. Phasellus eget odio eget risus accumsan semper. Ut id magna nunc. Nullam vulputate lorem vel felis faucibus, vitae feugiat massa malesuada."
	paraLast  = "Conclusion: Aenean blandit diam et magna fermentum efficitur. Maecenas tincidunt orci felis, non accumsan erat finibus nec. Fusce rhoncus ultrices risus, id tempus dui tincidunt id."
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	pkglogger.InitStructured(cfg.App.Env)

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	var users []domain.User
	if err := db.Where("is_guest = ?", false).Find(&users).Error; err != nil || len(users) == 0 {
		log.Fatalf("No users to author articles (run migrations first): %v", err)
	}

	articleRepo := repository.NewArticleRepository(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i, tp := range topics {
		slug := common.Slugify(tp.title)

		if exists, _ := articleRepo.ExistsBySlug(slug); exists {
			continue
		}

		author := users[rng.Intn(len(users))]
		doc := composeBody(tp, i)

		stored, err := doc.Marshal()
		if err != nil {
			log.Fatalf("Failed to serialize %s: %v", slug, err)
		}

		excerpt := fmt.Sprintf("A comprehensive guide about %s focusing on %s.", tp.category, tp.title)
		featured := fmt.Sprintf("https://picsum.photos/1200/630?random=%d", i)
		article := &domain.Article{
			Slug:          slug,
			Title:         tp.title,
			Excerpt:       &excerpt,
			Content:       string(stored),
			FeaturedImage: &featured,
			Published:     true,
			AuthorID:      author.ID,
		}

		blocks := make([]domain.ArticleBlock, 0, len(doc.Blocks))
		for j, b := range doc.Blocks {
			blocks = append(blocks, domain.ArticleBlock{
				Type:     b.Type,
				Content:  string(b.Data),
				OrderNum: j,
			})
		}

		if err := articleRepo.Save(article, blocks); err != nil {
			log.Fatalf("Failed to save %s: %v", slug, err)
		}

		seedLikes(db, rng, users, article.ID)
		pkglogger.GetLogger().Info().Str("slug", slug).Msg("seeded article")
	}

	pkglogger.GetLogger().Info().Msg("seeding completed")
}

// composeBody drives an editor session through the same actions an author
// would take, then serializes the result.
func composeBody(tp topic, index int) *content.Document {
	s := editor.NewSession()

	// The session opens with one empty text block; fill it in.
	s.EditBlockContent(s.ActiveID(), paraOne)

	heading := s.InsertBlockAt(editor.BlockHeader, 0)
	s.EditBlockContent(heading, map[string]any{
		"text":  fmt.Sprintf("This is a heading for %s", common.Slugify(tp.title)),
		"level": 2,
	})

	// Back to the tail and keep appending.
	blocks := s.Blocks()
	s.SetActive(blocks[len(blocks)-1].ID)

	image := s.InsertBlock(editor.BlockImage)
	s.ResolveImageUpload(image,
		fmt.Sprintf("https://picsum.photos/800/400?random=%d", index),
		"Random image from Lorem Picsum")

	para := s.SplitOnEnter()
	s.EditBlockContent(para, paraTwo)

	quote := s.InsertBlock(editor.BlockQuote)
	s.EditBlockContent(quote, map[string]any{
		"text":      "The best way to predict the future is to create it.",
		"caption":   "Abraham Lincoln",
		"alignment": "left",
	})

	para = s.SplitOnEnter()
	s.EditBlockContent(para, paraThree)

	list := s.InsertBlock(editor.BlockList)
	s.EditBlockContent(list, map[string]any{
		"style": "unordered",
		"items": []any{
			"First important point about this topic",
			"Another critical aspect to consider",
			"Final crucial element to remember",
		},
	})

	s.InsertBlock(editor.BlockSeparator)

	para = s.SplitOnEnter()
	s.EditBlockContent(para, paraLast)

	return s.Serialize(time.Now())
}

func seedLikes(db *gorm.DB, rng *rand.Rand, users []domain.User, articleID uint64) {
	n := rng.Intn(len(users) + 1)
	perm := rng.Perm(len(users))
	for _, idx := range perm[:n] {
		like := domain.Like{UserID: users[idx].ID, ArticleID: articleID}
		// duplicate inserts are fine, the unique index drops them
		_ = db.Create(&like).Error
	}
}
