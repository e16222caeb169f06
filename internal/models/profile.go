package models

import "time"

const RoleJobSeeker = "jobseeker"

// Profile is the account document written after a successful registration.
type Profile struct {
	UserID    string    `bson:"_id" gorm:"column:user_id;type:text;primaryKey" json:"user_id"`
	Name      *string   `bson:"name" gorm:"column:name;type:text" json:"name"` // nil when no name was given
	Email     string    `bson:"email" gorm:"column:email;type:text;index" json:"email"`
	Role      string    `bson:"role" gorm:"column:role;type:text" json:"role"`
	CreatedAt time.Time `bson:"createdAt" gorm:"column:created_at;type:timestamptz" json:"createdAt"`
}

func (Profile) TableName() string { return "profiles" }
