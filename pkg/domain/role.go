package domain

import (
	"strings"

	dErrors "crewfit/pkg/domain-errors"
)

// Department groups ranks into the vessel's organizational branches.
type Department string

const (
	DepartmentDeck     Department = "deck"
	DepartmentEngine   Department = "engine"
	DepartmentGalley   Department = "galley"
	DepartmentInterior Department = "interior"
)

// IsValid checks if the department is one of the supported enum values.
func (d Department) IsValid() bool {
	switch d {
	case DepartmentDeck, DepartmentEngine, DepartmentGalley, DepartmentInterior:
		return true
	}
	return false
}

func (d Department) String() string { return string(d) }

// RoleKey is a canonical rank/role identifier, e.g. "chief_officer".
type RoleKey string

// Known role keys. The set mirrors the rank taxonomy used by the crew
// planning surfaces; unknown keys are rejected at parse time.
const (
	RoleMaster         RoleKey = "master"
	RoleChiefOfficer   RoleKey = "chief_officer"
	RoleSecondOfficer  RoleKey = "second_officer"
	RoleBosun          RoleKey = "bosun"
	RoleAbleSeaman     RoleKey = "able_seaman"
	RoleOrdinarySeaman RoleKey = "ordinary_seaman"
	RoleChiefEngineer  RoleKey = "chief_engineer"
	RoleSecondEngineer RoleKey = "second_engineer"
	RoleThirdEngineer  RoleKey = "third_engineer"
	RoleMotorman       RoleKey = "motorman"
	RoleElectrician    RoleKey = "electrician"
	RoleChiefCook      RoleKey = "chief_cook"
	RoleCook           RoleKey = "cook"
	RoleMessman        RoleKey = "messman"
	RoleChiefSteward   RoleKey = "chief_steward"
	RoleSteward        RoleKey = "steward"
)

// roleDepartments maps every known role to its department. A role outside
// this table is a hard domain violation, not a scoring input.
var roleDepartments = map[RoleKey]Department{
	RoleMaster:         DepartmentDeck,
	RoleChiefOfficer:   DepartmentDeck,
	RoleSecondOfficer:  DepartmentDeck,
	RoleBosun:          DepartmentDeck,
	RoleAbleSeaman:     DepartmentDeck,
	RoleOrdinarySeaman: DepartmentDeck,
	RoleChiefEngineer:  DepartmentEngine,
	RoleSecondEngineer: DepartmentEngine,
	RoleThirdEngineer:  DepartmentEngine,
	RoleMotorman:       DepartmentEngine,
	RoleElectrician:    DepartmentEngine,
	RoleChiefCook:      DepartmentGalley,
	RoleCook:           DepartmentGalley,
	RoleMessman:        DepartmentGalley,
	RoleChiefSteward:   DepartmentInterior,
	RoleSteward:        DepartmentInterior,
}

// ParseRoleKey normalizes and validates a role key.
func ParseRoleKey(s string) (RoleKey, error) {
	key := RoleKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role key cannot be empty")
	}
	if _, ok := roleDepartments[key]; !ok {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown role key: %s", s)
	}
	return key, nil
}

// DepartmentOf returns the department a role belongs to.
// ok is false for roles outside the known taxonomy.
func DepartmentOf(role RoleKey) (Department, bool) {
	d, ok := roleDepartments[role]
	return d, ok
}

// Roles returns all known role keys. Order is not guaranteed.
func Roles() []RoleKey {
	keys := make([]RoleKey, 0, len(roleDepartments))
	for k := range roleDepartments {
		keys = append(keys, k)
	}
	return keys
}

func (r RoleKey) String() string { return string(r) }

// IsNil returns true if the role key is empty.
func (r RoleKey) IsNil() bool { return r == "" }
