package transport

import "time"

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type RegisterResponse struct {
	Message  string `json:"message"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerRequest is used for both create and full replace. BirthDate accepts
// YYYY-MM-DD or RFC3339.
type PlayerRequest struct {
	Name      string  `json:"name"`
	Team      string  `json:"team"`
	Position  string  `json:"position"`
	HeightM   float64 `json:"height_m"`
	WeightKg  float64 `json:"weight_kg"`
	BirthDate string  `json:"birth_date"`
}

type CreateTeamRequest struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Stadium    string  `json:"stadium"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Conference string  `json:"conference"`
	Division   string  `json:"division"`
}

type PatchTeamRequest struct {
	Name       *string  `json:"name"`
	City       *string  `json:"city"`
	State      *string  `json:"state"`
	Stadium    *string  `json:"stadium"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Conference *string  `json:"conference"`
	Division   *string  `json:"division"`
}

type TeamLocation struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Stadium    string  `json:"stadium"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Conference string  `json:"conference"`
	Division   string  `json:"division"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   *uint  `json:"role_id"`
	IsActive *bool  `json:"is_active"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	RoleID   *uint   `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

type RoleRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	CanCreatePlayers *bool   `json:"can_create_players"`
	CanReadPlayers   *bool   `json:"can_read_players"`
	CanUpdatePlayers *bool   `json:"can_update_players"`
	CanDeletePlayers *bool   `json:"can_delete_players"`
	CanManageUsers   *bool   `json:"can_manage_users"`
	IsActive         *bool   `json:"is_active"`
}
