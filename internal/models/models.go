package models

import (
	"strings"
	"time"
)

const (
	AdminRoleName   = "admin"
	DefaultRoleName = "user"
)

type Role struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name             string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description      *string   `gorm:"size:255"                  json:"description"`
	CanCreatePlayers bool      `gorm:"not null"                  json:"can_create_players"`
	CanReadPlayers   bool      `gorm:"not null"                  json:"can_read_players"`
	CanUpdatePlayers bool      `gorm:"not null"                  json:"can_update_players"`
	CanDeletePlayers bool      `gorm:"not null"                  json:"can_delete_players"`
	CanManageUsers   bool      `gorm:"not null"                  json:"can_manage_users"`
	IsActive         bool      `gorm:"not null"                  json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsAdmin reports whether the role carries the reserved administrator name.
func (r *Role) IsAdmin() bool {
	return r != nil && r.IsActive && strings.EqualFold(r.Name, AdminRoleName)
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null"                     json:"-"`
	IsActive     bool      `gorm:"not null"                     json:"is_active"`
	RoleID       *uint     `gorm:"index"                        json:"role_id"`
	Role         *Role     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Player struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null;index"  json:"name"`
	Team      string    `gorm:"size:255;not null;index"  json:"team"`
	Position  string    `gorm:"size:50;not null"         json:"position"`
	HeightM   float64   `gorm:"not null"                 json:"height_m"`
	WeightKg  float64   `gorm:"not null"                 json:"weight_kg"`
	BirthDate time.Time `gorm:"not null"                 json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Team struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name       string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	City       string    `gorm:"size:100;not null"             json:"city"`
	State      string    `gorm:"size:100;not null"             json:"state"`
	Stadium    string    `gorm:"size:150;not null"             json:"stadium"`
	Latitude   float64   `gorm:"not null"                      json:"latitude"`
	Longitude  float64   `gorm:"not null"                      json:"longitude"`
	Conference string    `gorm:"size:20;not null;index"        json:"conference"`
	Division   string    `gorm:"size:50;not null;index"        json:"division"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type TeamWithPlayerCount struct {
	Team
	PlayerCount int64 `json:"player_count"`
}

func All() []any {
	return []any{&Role{}, &User{}, &Team{}, &Player{}}
}
