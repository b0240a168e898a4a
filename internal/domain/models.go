// Package domain defines the read models of the comparator: people,
// legislators, candidates and their reference entities, the precomputed
// metrics rows, and the request/response shapes of a comparison.
//
// Persistent types are mapped with GORM and carry json tags that match the
// column names, so the same structs decode rows from either the SQL store or
// a PostgREST-style data API.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/votabienperu/comparador/internal/search"
)

// ErrMalformedRow marks a fetched row that does not satisfy the read model
// (missing required reference, unknown enum value, negative counter...).
var ErrMalformedRow = errors.New("malformed row")

func malformed(table, id, format string, args ...any) error {
	return fmt.Errorf("%w: %s %q: %s", ErrMalformedRow, table, id, fmt.Sprintf(format, args...))
}

// Person is shared by legislators and candidates.
//
// SearchName is the folded FullName (lowercase, no accents) kept in sync by
// BeforeSave; it backs accent-insensitive substring search.
type Person struct {
	ID         string    `json:"id"          yaml:"id"          gorm:"type:varchar(64);primaryKey"`
	FullName   string    `json:"full_name"   yaml:"full_name"   gorm:"type:varchar(255);not null"`
	SearchName string    `json:"-"           yaml:"-"           gorm:"type:varchar(255);not null;index:idx_persons_search"`
	ImageURL   string    `json:"image_url"   yaml:"image_url"   gorm:"type:text"`
	Profession string    `json:"profession"  yaml:"profession"  gorm:"type:varchar(255)"`
	CreatedAt  time.Time `json:"-"           yaml:"-"`
	UpdatedAt  time.Time `json:"-"           yaml:"-"`
}

func (Person) TableName() string { return "persons" }

// BeforeSave refreshes SearchName from FullName.
func (p *Person) BeforeSave(*gorm.DB) error {
	p.SearchName = search.Fold(p.FullName)
	return nil
}

// DisplayName returns the trimmed, space-collapsed full name. Names stored
// in all caps, as the electoral registry publishes them, are title-cased with
// Spanish rules.
func (p *Person) DisplayName() string {
	if p == nil {
		return ""
	}
	name := strings.Join(strings.Fields(p.FullName), " ")
	if !hasLower(name) {
		name = cases.Title(language.Spanish).String(name)
	}
	return name
}

func hasLower(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

type Party struct {
	ID      string `json:"id"       yaml:"id"       gorm:"type:varchar(64);primaryKey"`
	Name    string `json:"name"     yaml:"name"     gorm:"type:varchar(255);not null"`
	Acronym string `json:"acronym"  yaml:"acronym"  gorm:"type:varchar(32)"`
	LogoURL string `json:"logo_url" yaml:"logo_url" gorm:"type:text"`
}

func (Party) TableName() string { return "parties" }

type District struct {
	ID    string `json:"id"    yaml:"id"    gorm:"type:varchar(64);primaryKey"`
	Name  string `json:"name"  yaml:"name"  gorm:"type:varchar(255);not null"`
	Code  string `json:"code"  yaml:"code"  gorm:"type:varchar(16)"`
	Seats int    `json:"seats" yaml:"seats"`
}

func (District) TableName() string { return "districts" }

// ParliamentaryGroup is a caucus inside the chamber, independent of the
// party that got the legislator elected.
type ParliamentaryGroup struct {
	ID      string `json:"id"      yaml:"id"      gorm:"type:varchar(64);primaryKey"`
	Name    string `json:"name"    yaml:"name"    gorm:"type:varchar(255);not null"`
	Acronym string `json:"acronym" yaml:"acronym" gorm:"type:varchar(32)"`
}

func (ParliamentaryGroup) TableName() string { return "parliamentary_groups" }

// GroupMembership records a legislator's time in a parliamentary group. The
// membership with a nil EndDate is the current one.
type GroupMembership struct {
	ID           string             `json:"id"            yaml:"id"            gorm:"type:varchar(64);primaryKey"`
	LegislatorID string             `json:"legislator_id" yaml:"legislator_id" gorm:"type:varchar(64);not null;index:idx_membership_legislator"`
	GroupID      string             `json:"group_id"      yaml:"group_id"      gorm:"type:varchar(64);not null"`
	StartDate    Date               `json:"start_date"    yaml:"start_date"`
	EndDate      *Date              `json:"end_date"      yaml:"end_date"`
	Group        ParliamentaryGroup `json:"group"         yaml:"-"             gorm:"foreignKey:GroupID;references:ID"`
}

func (GroupMembership) TableName() string { return "legislator_groups" }

// Legislator is a seat held (or formerly held) by a Person.
//
// CurrentGroup is not a column: the backing store resolves it as a
// pre-joined attribute and it is treated as opaque here.
type Legislator struct {
	ID           string              `json:"id"            yaml:"id"          gorm:"type:varchar(64);primaryKey"`
	PersonID     string              `json:"person_id"     yaml:"person_id"   gorm:"type:varchar(64);not null;index"`
	Chamber      Chamber             `json:"chamber"       yaml:"chamber"     gorm:"type:varchar(16);not null;index"`
	Condition    Condition           `json:"condition"     yaml:"condition"   gorm:"type:varchar(16);not null"`
	Active       bool                `json:"active"        yaml:"active"      gorm:"not null;default:true"`
	StartDate    Date                `json:"start_date"    yaml:"start_date"`
	EndDate      *Date               `json:"end_date"      yaml:"end_date"`
	PartyID      *string             `json:"party_id"      yaml:"party_id"    gorm:"type:varchar(64);index"`
	DistrictID   string              `json:"district_id"   yaml:"district_id" gorm:"type:varchar(64);not null;index"`
	Person       *Person             `json:"person"        yaml:"-"           gorm:"foreignKey:PersonID;references:ID"`
	Party        *Party              `json:"party"         yaml:"-"           gorm:"foreignKey:PartyID;references:ID"`
	District     *District           `json:"district"      yaml:"-"           gorm:"foreignKey:DistrictID;references:ID"`
	CurrentGroup *ParliamentaryGroup `json:"current_group" yaml:"-"           gorm:"-"`
	CreatedAt    time.Time           `json:"-"             yaml:"-"`
	UpdatedAt    time.Time           `json:"-"             yaml:"-"`
}

func (Legislator) TableName() string { return "legislators" }

// Validate checks the invariants the comparison relies on. Related rows that
// are declared by reference (person, district, and party when PartyID is set)
// must have been joined.
// A missing start date is not an error: it reads as the zero Date.
func (l *Legislator) Validate() error {
	const table = "legislators"
	switch {
	case strings.TrimSpace(l.ID) == "":
		return malformed(table, l.ID, "empty id")
	case l.Person == nil || l.Person.DisplayName() == "":
		return malformed(table, l.ID, "missing person")
	case !l.Chamber.Valid():
		return malformed(table, l.ID, "unknown chamber %q", l.Chamber)
	case !l.Condition.Valid():
		return malformed(table, l.ID, "unknown condition %q", l.Condition)
	case l.District == nil:
		return malformed(table, l.ID, "missing district")
	case l.PartyID != nil && l.Party == nil:
		return malformed(table, l.ID, "party %q not joined", *l.PartyID)
	}
	return nil
}

type ElectoralProcess struct {
	ID     string `json:"id"     yaml:"id"     gorm:"type:varchar(64);primaryKey"`
	Name   string `json:"name"   yaml:"name"   gorm:"type:varchar(255);not null"`
	Year   int    `json:"year"   yaml:"year"`
	Active bool   `json:"active" yaml:"active"`
}

func (ElectoralProcess) TableName() string { return "electoral_processes" }

// Candidate is one candidacy of a Person in an electoral process.
type Candidate struct {
	ID         string            `json:"id"           yaml:"id"          gorm:"type:varchar(64);primaryKey"`
	ProcessID  string            `json:"process_id"   yaml:"process_id"  gorm:"type:varchar(64);not null;index"`
	PartyID    string            `json:"party_id"     yaml:"party_id"    gorm:"type:varchar(64);not null;index"`
	PersonID   string            `json:"person_id"    yaml:"person_id"   gorm:"type:varchar(64);not null;index"`
	Type       CandidacyType     `json:"type"         yaml:"type"        gorm:"type:varchar(32);not null;index"`
	ListNumber *int              `json:"list_number"  yaml:"list_number"`
	Status     string            `json:"status"       yaml:"status"      gorm:"type:varchar(32)"`
	Votes      *int64            `json:"votes"        yaml:"votes"`
	Elected    bool              `json:"elected"      yaml:"elected"`
	DistrictID *string           `json:"district_id"  yaml:"district_id" gorm:"type:varchar(64);index"`
	Person     *Person           `json:"person"       yaml:"-"           gorm:"foreignKey:PersonID;references:ID"`
	Party      *Party            `json:"party"        yaml:"-"           gorm:"foreignKey:PartyID;references:ID"`
	District   *District         `json:"district"     yaml:"-"           gorm:"foreignKey:DistrictID;references:ID"`
	Process    *ElectoralProcess `json:"process"      yaml:"-"           gorm:"foreignKey:ProcessID;references:ID"`
	CreatedAt  time.Time         `json:"-"            yaml:"-"`
	UpdatedAt  time.Time         `json:"-"            yaml:"-"`
}

func (Candidate) TableName() string { return "candidates" }

func (c *Candidate) Validate() error {
	const table = "candidates"
	switch {
	case strings.TrimSpace(c.ID) == "":
		return malformed(table, c.ID, "empty id")
	case c.Person == nil || c.Person.DisplayName() == "":
		return malformed(table, c.ID, "missing person")
	case !c.Type.Valid():
		return malformed(table, c.ID, "unknown candidacy type %q", c.Type)
	case c.Party == nil:
		return malformed(table, c.ID, "missing party")
	case c.DistrictID != nil && c.District == nil:
		return malformed(table, c.ID, "district %q not joined", *c.DistrictID)
	case c.Votes != nil && *c.Votes < 0:
		return malformed(table, c.ID, "negative votes")
	}
	return nil
}
