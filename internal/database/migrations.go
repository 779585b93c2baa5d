package database

import (
	"fmt"

	"github.com/yukikurage/fitness-challenge-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate() error {
	zap.L().Info("running database migrations")
	err := DB.AutoMigrate(
		&models.User{},
		&models.FitnessChallenge{},
		&models.UserCompletion{},
		&models.Spell{},
		&models.UserSpell{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedSpells(DB); err != nil {
		return fmt.Errorf("failed to seed spell shop: %w", err)
	}

	zap.L().Info("database migrations completed")
	return nil
}

// seedSpells inserts the shop catalogue on first boot. Spell IDs line up
// with the effects table in models.SpellEffects.
func seedSpells(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Spell{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	spells := []models.Spell{
		{Name: "Fireball Charm", SkillpointRequired: 30},
		{Name: "Teleportation Glyph", SkillpointRequired: 60},
		{Name: "Hydra Shield", SkillpointRequired: 90},
		{Name: "Phoenix Flight", SkillpointRequired: 120},
		{Name: "Celestial Grimoire", SkillpointRequired: 150},
		{Name: "Void Arcana", SkillpointRequired: 200},
		{Name: "Archmage Rite", SkillpointRequired: 300},
	}

	return db.Create(&spells).Error
}
