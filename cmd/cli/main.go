package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"fstrack/internal/config"
	"fstrack/internal/database"
	"fstrack/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "fstrack",
	Short: "FSTrack admin CLI",
}

func connect() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return database.Connect(cfg)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed roles, plantation groups and development users",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}

		roles := []database.Role{
			{ID: database.RoleSuperadmin, Name: "Superadmin"},
			{ID: database.RoleManager, Name: "Manager"},
			{ID: database.RoleKasiePG, Name: "Kasie PG"},
			{ID: database.RoleKasieFE, Name: "Kasie FE"},
			{ID: database.RoleOperator, Name: "Operator"},
		}
		for _, role := range roles {
			if err := db.Where(database.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("failed to seed role %s: %w", role.ID, err)
			}
		}

		group := database.PlantationGroup{ID: "PG1", Name: "Plantation Group 1"}
		if err := db.Where(database.PlantationGroup{ID: group.ID}).FirstOrCreate(&group).Error; err != nil {
			return fmt.Errorf("failed to seed plantation group: %w", err)
		}

		hash, err := utils.HashPassword("DevPassword123")
		if err != nil {
			return err
		}

		groupID := group.ID
		devUsers := []database.User{
			{Username: "dev_kasie_pg", Fullname: "Dev Kasie PG User", Role: database.RoleKasiePG, PlantationGroupID: &groupID},
			{Username: "dev_kasie_fe", Fullname: "Dev Kasie FE User", Role: database.RoleKasieFE, PlantationGroupID: &groupID},
			{Username: "dev_operator", Fullname: "Dev Operator User", Role: database.RoleOperator, PlantationGroupID: &groupID},
		}
		for _, u := range devUsers {
			var existing database.User
			if err := db.First(&existing, "username = ?", u.Username).Error; err == nil {
				fmt.Printf("user already exists: %s\n", u.Username)
				continue
			}

			u.PasswordHash = hash
			u.IsFirstTime = true
			if err := db.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Username, err)
			}
			fmt.Printf("seeded user: %s\n", u.Username)
		}

		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userRole string
var userFullname string

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a new user with a generated password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !database.ValidRole(userRole) {
			return fmt.Errorf("unknown role %q", userRole)
		}

		db, err := connect()
		if err != nil {
			return err
		}

		password := utils.GenerateRandomString(12)
		hash, err := utils.HashPassword(password)
		if err != nil {
			return err
		}

		user := database.User{
			Username:     args[0],
			PasswordHash: hash,
			Fullname:     userFullname,
			Role:         userRole,
			IsFirstTime:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("created user %s with password %s\n", user.Username, password)
		return nil
	},
}

func main() {
	userCreateCmd.Flags().StringVar(&userRole, "role", database.RoleOperator, "role for the new user")
	userCreateCmd.Flags().StringVar(&userFullname, "fullname", "", "full name for the new user")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
