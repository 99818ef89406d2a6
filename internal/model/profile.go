package model

import "time"

// ProviderPassword tags profiles created through password signup.
const ProviderPassword = "password"

// DefaultProfileName replaces a blank name when a profile is written.
const DefaultProfileName = "User"

// UserProfile is the persisted identity record.
// Name is always non-empty for a profile that was loaded successfully.
type UserProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// ProfileView is what the profile commands render.
type ProfileView struct {
	Profile     UserProfile `json:"profile"`
	DisplayName string      `json:"display_name"`

	// ModifiedAt is the last write time; zero when unknown.
	ModifiedAt time.Time `json:"modified_at,omitzero"`
}
