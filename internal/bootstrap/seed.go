package bootstrap

import (
	"log"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Category{},
		&model.Gloss{},
		&model.Video{},
		&model.Score{},
		&model.Notification{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []model.Role{
		{Name: "admin", Description: "Platform administrator"},
		{Name: "contributor", Description: "Records and reviews videos"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&model.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole model.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		PasswordHash: string(hashedPasswordBytes),
		RoleID:       &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded (username: admin, password: admin123)")
	return nil
}

// SeedSampleCreator makes sure the reference-recording account exists under
// the id the deployment configured. Its uploads become gloss sample videos.
func SeedSampleCreator(db *gorm.DB, cfg *config.Config) error {
	if cfg.SampleCreatorID == uuid.Nil {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).
		Where("id = ?", cfg.SampleCreatorID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var contributorRole model.Role
	if err := db.Where("name = ?", "contributor").First(&contributorRole).Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("sample-creator"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	creator := model.User{
		ID:           cfg.SampleCreatorID,
		Username:     "sample-creator",
		PasswordHash: string(hashed),
		RoleID:       &contributorRole.ID,
	}
	if err := db.Create(&creator).Error; err != nil {
		return err
	}

	log.Println("Sample creator account seeded")
	return nil
}
