package model

import "strings"

// Policy describes which category of people may fill a role
type Policy string

const (
	PolicyPrivilegedOnly    Policy = "privileged_only"
	PolicyNonPrivilegedOnly Policy = "non_privileged_only"
	PolicyAny               Policy = "any"
	PolicyMixed             Policy = "mixed"
)

func (p Policy) IsValid() bool {
	switch p {
	case PolicyPrivilegedOnly, PolicyNonPrivilegedOnly, PolicyAny, PolicyMixed:
		return true
	}
	return false
}

// Person is a single roster entry loaded from the master table
type Person struct {
	Name        string          `json:"name" binding:"required"`
	Privileged  bool            `json:"privileged"`
	Eligibility map[string]bool `json:"eligibility"`
}

// CanServe reports whether the person is flagged as able to fill the role
func (p Person) CanServe(role string) bool {
	return p.Eligibility[role]
}

// Requirement is one row of the role requirement table
type Requirement struct {
	Role      string `yaml:"name" json:"name" validate:"required"`
	Headcount int    `yaml:"headcount" json:"headcount" validate:"min=1"`
	Policy    Policy `yaml:"policy" json:"policy" validate:"required"`
}

// Roster is the output of a source loader: people plus the role columns found in the source
type Roster struct {
	People []Person
	Roles  []string
}

// NormalizeName trims surrounding whitespace and collapses inner runs of spaces
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey identifies a person regardless of spacing and letter case
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}
