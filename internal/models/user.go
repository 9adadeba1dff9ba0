package models

type User struct {
	BaseModel

	Username     string `gorm:"uniqueIndex;not null;size:64"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
}
