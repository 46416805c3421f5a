package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account migrated from the legacy platform.
// Users are deduplicated by LegacyID.
type User struct {
	ID                uuid.UUID
	LegacyID          int64
	Username          string
	Email             string
	FirstName         string
	LastName          string
	PasswordHash      string
	ConfirmationToken string
	Enabled           bool
	CreatedAt         time.Time
}

// JournalUser grants a user a role in a journal.
type JournalUser struct {
	JournalID uuid.UUID
	UserID    uuid.UUID
	Role      Role
}

// Role is the name of a journal membership role.
type Role string

const (
	RoleAdmin               Role = "admin"
	RoleManager             Role = "manager"
	RoleEditor              Role = "editor"
	RoleSectionEditor       Role = "section_editor"
	RoleLayoutEditor        Role = "layout_editor"
	RoleReviewer            Role = "reviewer"
	RoleCopyeditor          Role = "copyeditor"
	RoleProofreader         Role = "proofreader"
	RoleAuthor              Role = "author"
	RoleReader              Role = "reader"
	RoleSubscriptionManager Role = "subscription_manager"
	RoleUnknown             Role = "unknown"
)

var legacyRoles = map[int64]Role{
	0x1:      RoleAdmin,
	0x10:     RoleManager,
	0x100:    RoleEditor,
	0x200:    RoleSectionEditor,
	0x300:    RoleLayoutEditor,
	0x1000:   RoleReviewer,
	0x2000:   RoleCopyeditor,
	0x3000:   RoleProofreader,
	0x10000:  RoleAuthor,
	0x100000: RoleReader,
	0x200000: RoleSubscriptionManager,
}

// RoleFromLegacyID maps a legacy numeric role id to a Role.
func RoleFromLegacyID(id int64) Role {
	if r, ok := legacyRoles[id]; ok {
		return r
	}
	return RoleUnknown
}
