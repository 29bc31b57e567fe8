package models

// DefaultAvatar is assigned to new accounts until the user uploads one.
const DefaultAvatar = "https://res.cloudinary.com/silenceiv/image/upload/q_auto:eco/v1617358367/defaultAvatar_wnoogh.png"

type User struct {
	ID           string `gorm:"primaryKey"           json:"id"`
	Name         string `gorm:"not null"             json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"             json:"-"`
	Gender       string `json:"gender"`
	PhoneNumber  string `json:"phoneNumber"`
	Avatar       string `json:"avatar"`
}
