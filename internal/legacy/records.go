package legacy

import "time"

// JournalRecord is a row of the legacy journals table.
type JournalRecord struct {
	ID            int64
	Path          string
	PrimaryLocale string
}

// SectionRecord is a row of the legacy sections table.
// Absent numeric flags read as zero.
type SectionRecord struct {
	ID          int64
	JournalID   int64
	MetaIndexed int64
	HideTitle   int64
	Seq         int
}

// IssueRecord is a row of the legacy issues table.
type IssueRecord struct {
	ID            int64
	JournalID     int64
	Volume        string
	Number        string
	Year          int
	Published     bool
	Current       bool
	DatePublished *time.Time
}

// IssueSectionRecord is a row of custom_section_orders.
type IssueSectionRecord struct {
	IssueID   int64
	SectionID int64
	Seq       int
}

// ArticleRecord is a legacy article joined with its published_articles row, if any.
type ArticleRecord struct {
	ID            int64
	JournalID     int64
	SectionID     int64
	UserID        int64
	Language      string
	Status        int
	Pages         string
	DateSubmitted *time.Time
	IssueID       int64
	DatePublished *time.Time
}

// AuthorRecord is a row of the legacy authors table.
type AuthorRecord struct {
	ID             int64
	ArticleID      int64
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	Country        string
	PrimaryContact bool
	Seq            int
}

// UserRecord is a row of the legacy users table.
type UserRecord struct {
	ID             int64
	Username       string
	FirstName      string
	LastName       string
	Email          string
	Disabled       bool
	DateRegistered *time.Time
}

// RoleRecord is a row of the legacy roles table.
type RoleRecord struct {
	JournalID int64
	UserID    int64
	RoleID    int64
}
