package controllers

import (
	"os"

	"github.com/Priyam-804/WearNest/models"
	"github.com/Priyam-804/WearNest/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateSampleAdmin seeds a default console admin on first boot so a fresh
// deployment is operable. Credentials come from the environment; the seed is
// skipped when an admin already exists.
func CreateSampleAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded admin account %s", email)
	return nil
}
