package models

import "time"

var Relationships = []string{
	"Self", "Spouse", "Parent", "Child", "Sibling",
	"Grandparent", "Grandchild", "Aunt/Uncle", "Cousin",
	"Niece/Nephew", "In-Law", "Other",
}

func ValidRelationship(r string) bool {
	for _, known := range Relationships {
		if known == r {
			return true
		}
	}
	return false
}

type Member struct {
	ID           string
	Name         string
	Relationship string
	BirthDate    *string
	Bio          *string
	PhotoURL     *string
	ParentID     *string
	Photos       []Photo
	CreatedBy    string
	CreatedAt    time.Time
}

// MemberPatch carries optional field updates; nil fields are left unchanged.
type MemberPatch struct {
	Name         *string
	Relationship *string
	BirthDate    *string
	Bio          *string
	PhotoURL     *string
	ParentID     *string
}

func (p MemberPatch) Empty() bool {
	return p.Name == nil && p.Relationship == nil && p.BirthDate == nil &&
		p.Bio == nil && p.PhotoURL == nil && p.ParentID == nil
}

type Photo struct {
	ID       string
	MemberID *string
	UserID   *string
	PhotoURL string
	Caption  *string
	AddedAt  time.Time
}
