// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username        string   `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email           string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash    string   `json:"-" gorm:"size:255;not null"`
	Role            UserRole `json:"role" gorm:"type:varchar(20);not null;default:'buyer'"`
	IsSuperuser     bool     `json:"is_superuser" gorm:"default:false"`
	EmailVerified   bool     `json:"email_verified" gorm:"default:false"`
	Phone           string   `json:"phone" gorm:"size:20"`
	AvatarURL       string   `json:"avatar_url" gorm:"size:512"`
	SellerRequested bool     `json:"seller_requested" gorm:"default:false"`

	// Relationships
	Profile  *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:SellerID"`
	Carts    []Cart    `json:"carts,omitempty" gorm:"foreignKey:UserID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin || u.IsSuperuser
}

// Profile is the 1:1 auxiliary record created alongside the user. It is never
// deleted independently; the user cascade removes it.
type Profile struct {
	BaseModel
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	PhoneNumber     string     `json:"phone_number" gorm:"size:20"`
	Address         string     `json:"address" gorm:"type:text"`
	FavoriteFlowers string     `json:"favorite_flowers" gorm:"size:255"`
	BirthDate       *time.Time `json:"birth_date"`
}
