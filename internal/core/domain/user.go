package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account types in the marketplace.
type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
)

var ErrInvalidRole = errors.New("invalid role")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ParseRole converts a wire string into a Role, rejecting anything outside
// the closed set. There is no fallback branch on purpose.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCreator:
		return RoleCreator, nil
	case RoleBrand:
		return RoleBrand, nil
	default:
		return "", ErrInvalidRole
	}
}

// SocialAccounts holds a creator's linked handles.
type SocialAccounts struct {
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty" bson:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
}

// User models a marketplace account. Creator and brand profiles share one
// record; role-specific fields stay empty for the other role.
type User struct {
	ID         string `json:"user_id" bson:"_id,omitempty"`
	Identifier string `json:"identifier" bson:"identifier"`
	Role       Role   `json:"role" bson:"role"`

	// Creator profile.
	Name           string         `json:"name,omitempty" bson:"name,omitempty"`
	Bio            string         `json:"bio,omitempty" bson:"bio,omitempty"`
	Niche          string         `json:"niche,omitempty" bson:"niche,omitempty"`
	SocialAccounts SocialAccounts `json:"social_accounts,omitempty" bson:"social_accounts,omitempty"`

	// Brand profile.
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Industry    string `json:"industry,omitempty" bson:"industry,omitempty"`

	OnboardingCompleted bool      `json:"onboarding_completed" bson:"onboarding_completed"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

// UserPatch is a shallow field-by-field update. Nil fields are left alone;
// set fields replace the whole target field.
type UserPatch struct {
	Name           *string         `json:"name,omitempty"`
	Bio            *string         `json:"bio,omitempty"`
	Niche          *string         `json:"niche,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Industry       *string         `json:"industry,omitempty"`
	SocialAccounts *SocialAccounts `json:"social_accounts,omitempty"`

	// OnboardingCompleted only ever moves false→true; a patch carrying
	// false is ignored so the flag never reverts.
	OnboardingCompleted *bool `json:"onboarding_completed,omitempty"`
}

// Apply merges the patch into a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Niche != nil {
		u.Niche = *p.Niche
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	if p.Industry != nil {
		u.Industry = *p.Industry
	}
	if p.SocialAccounts != nil {
		u.SocialAccounts = *p.SocialAccounts
	}
	if p.OnboardingCompleted != nil && *p.OnboardingCompleted {
		u.OnboardingCompleted = true
	}
	return u
}
