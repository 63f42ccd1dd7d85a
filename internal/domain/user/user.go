package user

import "time"

// User mirrors an identity-provider account. The primary key is the
// provider-issued id, so webhook redeliveries land on the same row.
type User struct {
	ID       string `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Email    string `gorm:"column:email;index" json:"email"`
	Name     string `gorm:"column:name" json:"name"`
	ImageURL string `gorm:"column:image_url" json:"imageUrl"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "user" }
