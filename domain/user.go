package domain

import "context"

type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	CompanyName string `gorm:"type:varchar(255);not null;column:company_name" json:"company_name"`
}

func (User) TableName() string { return "users" }

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uint) (*User, error)
}
