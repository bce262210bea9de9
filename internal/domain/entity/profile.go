package entity

import (
	"time"
)

// Profile roles
const (
	RoleUser     = "user"
	RoleMechanic = "mechanic"
)

// Profile represents an identity record for a user or a mechanic.
// ID is assigned by the identity collaborator (or generated on insert)
// and is immutable, as is Role.
type Profile struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Role        string    `bson:"role" json:"role"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`

	// Mechanic-only fields.
	Skills      []string `bson:"skills,omitempty" json:"skills,omitempty"`
	VehicleType string   `bson:"vehicleType,omitempty" json:"vehicleType,omitempty"`
	Available   bool     `bson:"available" json:"available"`
	Rating      *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}

// IsMechanic reports whether the profile is a mechanic profile.
func (p *Profile) IsMechanic() bool {
	return p.Role == RoleMechanic
}

// ProfileUpdate is a partial update applied to an existing profile.
// Nil fields are left untouched. ID and Role are decoded so that an
// attempt to change them can be rejected; they are never applied.
type ProfileUpdate struct {
	ID          *string   `json:"id,omitempty"`
	Role        *string   `json:"role,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Skills      *[]string `json:"skills,omitempty"`
	VehicleType *string   `json:"vehicleType,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
}

// IsEmpty reports whether the update carries no applicable fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Email == nil && u.Phone == nil &&
		u.Location == nil && u.Skills == nil && u.VehicleType == nil && u.Rating == nil
}

// TouchesIdentity reports whether the update tries to change the immutable
// id or role of the profile.
func (u ProfileUpdate) TouchesIdentity() bool {
	return u.ID != nil || u.Role != nil
}
