package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"carencia/internal/database"
	"carencia/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "carencia.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM interactions")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM leads")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM dealerships")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating admin user...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@carencia.com.br",
		PasswordHash: string(adminHash),
		Name:         "Administrador",
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("create admin:", err)
	}

	// ================== DEALERSHIPS ==================
	log.Println("Creating dealerships...")

	robustWebhook := "https://crm.robustcar.com.br/webhooks/carencia"
	robustPhone := "+55 11 4002-8922"
	robustEmail := "vendas@robustcar.com.br"
	spCity := "São Paulo"
	spState := "SP"

	robust := domain.Dealership{
		Name:         "Robust Car",
		Slug:         "robust_car_concessionaria",
		Phone:        &robustPhone,
		Email:        &robustEmail,
		WebhookURL:   &robustWebhook,
		City:         &spCity,
		State:        &spState,
		AcceptsLeads: true,
		Active:       true,
	}
	if err := db.Create(&robust).Error; err != nil {
		log.Fatal("create dealership:", err)
	}

	autoPhone := "+55 11 3333-1010"
	autoprime := domain.Dealership{
		Name:         "AutoPrime Veículos",
		Slug:         "autoprime",
		Phone:        &autoPhone,
		City:         &spCity,
		State:        &spState,
		AcceptsLeads: true,
		Active:       true,
	}
	// Created after Robust Car so the default-dealership tiebreak
	// (oldest first) stays deterministic in a fresh database.
	time.Sleep(10 * time.Millisecond)
	if err := db.Create(&autoprime).Error; err != nil {
		log.Fatal("create dealership:", err)
	}

	// ================== VEHICLES ==================
	log.Println("Creating vehicles...")

	robustSource := "robust_car"
	vehicles := []domain.Vehicle{
		{
			Make:         "Chevrolet",
			Model:        "Onix 1.0 Turbo",
			Year:         2022,
			Price:        78900,
			Mileage:      34000,
			FuelType:     "flex",
			Transmission: "manual",
			Color:        "Prata",
			Photos:       []string{"/fotos/onix-2022-1.jpg", "/fotos/onix-2022-2.jpg"},
			DealershipID: &robust.ID,
			Available:    true,
			Featured:     true,
		},
		{
			Make:           "Hyundai",
			Model:          "HB20 Comfort Plus",
			Year:           2021,
			Price:          69900,
			Mileage:        51000,
			FuelType:       "flex",
			Transmission:   "automatic",
			Color:          "Branco",
			Photos:         []string{"/fotos/hb20-2021-1.jpg"},
			ScrapingSource: &robustSource,
			Available:      true,
		},
		{
			Make:         "Toyota",
			Model:        "Corolla XEi",
			Year:         2023,
			Price:        142500,
			Mileage:      18000,
			FuelType:     "flex",
			Transmission: "automatic",
			Color:        "Preto",
			Photos:       []string{"/fotos/corolla-2023-1.jpg"},
			Available:    true,
			Featured:     true,
		},
	}
	for i := range vehicles {
		if err := db.Create(&vehicles[i]).Error; err != nil {
			log.Fatal("create vehicle:", err)
		}
	}

	log.Println("Seed completed.")
}
