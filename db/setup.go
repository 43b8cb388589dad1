package db

import (
	"os"

	"github.com/studyhub-dev/studyhub/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.Course{},
		&models.Assignment{},
		&models.GroupProject{},
		&models.ProjectMember{},
		&models.ProjectTask{},
	}

	migrator := DB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := DB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDatabase creates a demo account when DEMO_USER_EMAIL and
// DEMO_USER_PASSWORD are set and the user does not exist yet.
func SeedDatabase() error {
	email := os.Getenv("DEMO_USER_EMAIL")
	password := os.Getenv("DEMO_USER_PASSWORD")

	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := models.User{
		FirstName:    "Demo",
		LastName:     "Student",
		Email:        email,
		PasswordHash: string(hash),
	}

	return DB.Create(&demo).Error
}
