package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/config"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/utils"
)

func main() {
	if err := config.LoadENV(); err != nil {
		fmt.Println("Warning: .env file could not be loaded, using system environment variables")
	}

	env, err := config.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read configuration")
	}
	utils.SetupLogger(env.GO_ENV)

	store, err := database.StartGORM(env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Study Abroad CMS - Database Seeding")
	fmt.Println(separator)

	admin := database.AdminSeed{
		Username: env.ADMIN_USERNAME,
		Email:    env.ADMIN_EMAIL,
		Password: env.ADMIN_PASSWORD,
	}
	if err := database.RunSeeds(store.GetDB(), admin); err != nil {
		log.Fatal().Err(err).Msg("❌ seeding failed")
	}

	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Println(separator)
	fmt.Println("Admin user is created from ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD.")
	fmt.Println("If ADMIN_EMAIL or ADMIN_PASSWORD is not set, admin user creation is skipped.")
}
