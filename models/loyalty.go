package models

import (
	"time"
)

// MaxStamps is the number of stamps that completes a loyalty cycle.
const MaxStamps = 10

// Loyalty level constants, derived from completed cycles.
const (
	LoyaltyLevelBronze   = "Bronze"
	LoyaltyLevelSilver   = "Silver"
	LoyaltyLevelGold     = "Gold"
	LoyaltyLevelPlatinum = "Platinum"
)

// LoyaltyLevelFor maps completed cycles to a tier.
func LoyaltyLevelFor(cyclesCompleted int) string {
	switch {
	case cyclesCompleted >= 10:
		return LoyaltyLevelPlatinum
	case cyclesCompleted >= 6:
		return LoyaltyLevelGold
	case cyclesCompleted >= 3:
		return LoyaltyLevelSilver
	default:
		return LoyaltyLevelBronze
	}
}

// LoyaltyAccount tracks one user's purchase stamps. Stamps never exceed
// MaxStamps; a claim resets them to zero and bumps the cycle count.
type LoyaltyAccount struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex"`
	Stamps          int       `json:"stamps" gorm:"default:0"`
	CyclesCompleted int       `json:"cycles_completed" gorm:"default:0"`
	LoyaltyLevel    string    `json:"loyalty_level" gorm:"default:'Bronze'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
