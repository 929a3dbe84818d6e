package bootstrap

import (
	"log"

	"github.com/famquest/famquest-backend/internal/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Family{},
		&entity.Participant{},
		&entity.Friendship{},
		&entity.TaskCompletion{},
		&entity.CoinTransaction{},
		&entity.PromotedTask{},
		&entity.CareInteraction{},
		&entity.ChampionRecord{},
		&entity.RankSnapshot{},
		&entity.Achievement{},
		&entity.FeedEvent{},
		&entity.DailyAllowance{},
		&entity.CollectionEntry{},
	)
}

// SeedDemoFamily creates a development family so the engine has something
// to rank. Skipped when any family already exists.
func SeedDemoFamily(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Family{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Families already exist, skipping demo seed")
		return nil
	}

	family := entity.Family{Name: "Demo Family"}
	if err := db.Create(&family).Error; err != nil {
		return err
	}

	password := "famquest123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	members := []entity.Participant{
		{FamilyID: family.ID, Name: "Alex", Role: entity.RoleParent, Level: 1, PasswordHash: string(hashedPasswordBytes)},
		{FamilyID: family.ID, Name: "Mia", Role: entity.RoleChild, Level: 3, PasswordHash: string(hashedPasswordBytes)},
		{FamilyID: family.ID, Name: "Ben", Role: entity.RoleChild, Level: 2, PasswordHash: string(hashedPasswordBytes)},
	}
	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Demo family seeded successfully")
	log.Println("   Members: Alex (parent), Mia, Ben")
	log.Printf("   Password: %s", password)

	return nil
}
