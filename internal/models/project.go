package models

import "time"

type Project struct {
	BaseModel

	Name      string     `gorm:"not null"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
	ManagerID uint       `gorm:"not null;index"`

	// Relationships
	Manager     User                `gorm:"foreignKey:ManagerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// IsClosed reports whether the project has an end date.
func (p *Project) IsClosed() bool {
	return p.EndDate != nil
}

func (p *Project) IsManagedBy(userID uint) bool {
	return p.ManagerID == userID
}

// Members returns the member users in membership order. Memberships must
// have been loaded with their users.
func (p *Project) Members() []User {
	members := make([]User, 0, len(p.Memberships))
	for _, membership := range p.Memberships {
		members = append(members, membership.User)
	}
	return members
}

func (p *Project) HasMember(userID uint) bool {
	for _, membership := range p.Memberships {
		if membership.UserID == userID {
			return true
		}
	}
	return false
}
