// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/financy/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID             uint32    `gorm:"primaryKey;autoIncrement:false"`
	FirstName      string    `gorm:"type:varchar(100);not null"`
	LastName       string    `gorm:"type:varchar(100)"`
	Picture        string    `gorm:"type:text"`
	PrimaryColor   string    `gorm:"type:varchar(20)"`
	SecondaryColor string    `gorm:"type:varchar(20)"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return entity.NewUser(m.ID, entity.UserParams{
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Picture:        m.Picture,
		PrimaryColor:   m.PrimaryColor,
		SecondaryColor: m.SecondaryColor,
	})
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Picture:        user.Picture,
		PrimaryColor:   user.PrimaryColor,
		SecondaryColor: user.SecondaryColor,
	}
}
