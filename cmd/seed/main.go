package main

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cityportal/internal/database"
	"cityportal/internal/domain/library"
	"cityportal/internal/domain/news"
	"cityportal/internal/domain/notification"
	"cityportal/internal/domain/quiz"
	"cityportal/internal/domain/report"
	"cityportal/internal/domain/user"
	"cityportal/internal/pkg/authz"
	"cityportal/internal/pkg/slug"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "cityportal.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db,
		&user.User{},
		&news.Article{},
		&library.Document{},
		&report.Category{},
		&report.Report{},
		&quiz.Quiz{},
		&quiz.Question{},
		&quiz.Choice{},
		&quiz.Attempt{},
		&quiz.Answer{},
		&notification.Device{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children before parents)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM quiz_answers")
	db.Exec("DELETE FROM quiz_attempts")
	db.Exec("DELETE FROM quiz_choices")
	db.Exec("DELETE FROM quiz_questions")
	db.Exec("DELETE FROM quizzes")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM report_categories")
	db.Exec("DELETE FROM documents")
	db.Exec("DELETE FROM articles")
	db.Exec("DELETE FROM devices")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := user.User{
		ID:           uuid.NewString(),
		Email:        "admin@cityportal.fr",
		PasswordHash: string(adminHash),
		FirstName:    "Admin",
		LastName:     "Portal",
		Role:         authz.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@cityportal.fr / admin123")

	memberHash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	member := user.User{
		ID:           uuid.NewString(),
		Email:        "jean.dupont@mail.fr",
		PasswordHash: string(memberHash),
		FirstName:    "Jean",
		LastName:     "Dupont",
		Role:         authz.RoleMember,
	}
	db.Create(&member)

	// ================== REPORT CATEGORIES ==================
	log.Println("Creating report categories...")
	categoryNames := []string{"Roads", "Lighting", "Waste", "Green spaces", "Public buildings"}
	categories := make([]report.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		cat := report.Category{
			ID:   uuid.NewString(),
			Name: name,
		}
		db.Create(&cat)
		categories = append(categories, cat)
	}

	// ================== SAMPLE REPORT ==================
	db.Create(&report.Report{
		ID:          uuid.NewString(),
		Title:       "Pothole near the market square",
		Description: "Deep pothole damaging car wheels at the north entrance.",
		CategoryID:  categories[0].ID,
		Address:     "Place du Marché",
		Latitude:    48.8566,
		Longitude:   2.3522,
		Status:      report.StatusNew,
		CitizenID:   &member.ID,
	})

	// ================== NEWS ==================
	log.Println("Creating news articles...")
	titles := []string{
		"New recycling schedule starts next month",
		"Town hall opening hours extended",
		"Summer festival program announced",
	}
	for _, title := range titles {
		db.Create(&news.Article{
			ID:      uuid.NewString(),
			Slug:    slug.Make(title),
			Title:   title,
			Excerpt: "Short summary for the homepage.",
			Content: "Full article body with all the details residents need.",
			Date:    time.Now(),
		})
	}

	// ================== QUIZ ==================
	log.Println("Creating sample quiz...")
	q := quiz.Quiz{
		ID:          uuid.NewString(),
		Title:       "Know your city",
		Description: "A short quiz about local services.",
		Published:   true,
	}
	question := quiz.Question{
		ID:     uuid.NewString(),
		QuizID: q.ID,
		Text:   "Which day is glass collected?",
	}
	choices := []quiz.Choice{
		{ID: uuid.NewString(), QuestionID: question.ID, Text: "Monday", Position: 0},
		{ID: uuid.NewString(), QuestionID: question.ID, Text: "Thursday", Position: 1},
	}
	question.CorrectChoiceID = choices[1].ID
	question.Choices = choices
	q.Questions = []quiz.Question{question}
	db.Create(&q)

	log.Println("Seed completed")
}
