package main

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/kennndev/mindflow/internal/config"
	"github.com/kennndev/mindflow/internal/models"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	admin, err := seedAdmin(db)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedDoctors(db, admin, 10); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(db, 50); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

func seedAdmin(db *gorm.DB) (*models.User, error) {
	admin := models.User{
		Email:      "admin@mindflow.health",
		Role:       models.RoleAdmin,
		IsVerified: true,
		IsActive:   true,
	}
	if err := admin.SetPassword("admin1234"); err != nil {
		return nil, err
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return nil, err
	}
	log.Printf("admin account: %s", admin.Email)
	return &admin, nil
}

var specialties = []string{
	"Clinical Psychology",
	"Psychiatry",
	"Counseling",
	"Child & Adolescent Psychiatry",
	"Addiction Medicine",
	"Trauma Therapy",
}

func seedDoctors(db *gorm.DB, admin *models.User, count int) error {
	log.Printf("seeding %d doctors", count)

	now := time.Now()
	for i := 0; i < count; i++ {
		user := models.User{
			Email:      fmt.Sprintf("doctor%d@mindflow.health", i+1),
			Role:       models.RoleDoctor,
			IsVerified: true,
			IsActive:   true,
		}
		if err := user.SetPassword("doctor1234"); err != nil {
			return err
		}
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		doctor := models.Doctor{
			UserID:            user.ID,
			DoctorID:          fmt.Sprintf("D-%04d", 1000+i),
			FirstName:         gofakeit.FirstName(),
			LastName:          gofakeit.LastName(),
			Title:             "Dr.",
			Specialty:         specialties[gofakeit.Number(0, len(specialties)-1)],
			LicenseNumber:     fmt.Sprintf("LIC-%06d", gofakeit.Number(100000, 999999)),
			LicenseState:      gofakeit.StateAbr(),
			PhoneNumber:       gofakeit.Phone(),
			Bio:               gofakeit.Sentence(15),
			YearsOfExperience: gofakeit.Number(2, 30),
			IsApproved:        true,
			ApprovedByID:      &admin.ID,
			ApprovedAt:        &now,
			ProfileCompleted:  true,
		}
		if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&doctor).Error; err != nil {
			return err
		}
	}
	return nil
}

var genders = []models.Gender{
	models.GenderMale,
	models.GenderFemale,
	models.GenderNonBinary,
	models.GenderPreferNotToSay,
}

func seedPatients(db *gorm.DB, count int) error {
	log.Printf("seeding %d patients", count)

	for i := 0; i < count; i++ {
		user := models.User{
			Email:      fmt.Sprintf("patient%d@example.com", i+1),
			Role:       models.RolePatient,
			IsVerified: true,
			IsActive:   true,
		}
		if err := user.SetPassword("patient1234"); err != nil {
			return err
		}
		if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		patient := models.Patient{
			UserID:           user.ID,
			PatientID:        fmt.Sprintf("P-%04d", 1000+i),
			FirstName:        gofakeit.FirstName(),
			LastName:         gofakeit.LastName(),
			DateOfBirth:      gofakeit.DateRange(time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC)),
			Gender:           genders[gofakeit.Number(0, len(genders)-1)],
			PhoneNumber:      gofakeit.Phone(),
			AddressStreet:    gofakeit.Street(),
			AddressCity:      gofakeit.City(),
			AddressState:     gofakeit.StateAbr(),
			AddressZipCode:   gofakeit.Zip(),
			AddressCountry:   "USA",
			ProfileCompleted: true,
		}
		if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&patient).Error; err != nil {
			return err
		}
	}
	return nil
}
