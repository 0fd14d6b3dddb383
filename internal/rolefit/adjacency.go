package rolefit

import (
	id "crewfit/pkg/domain"
)

// roleAdjacency is the static same-department suggestion graph. Edges only
// connect roles within one department; AdjacentRoles re-checks that
// invariant at read time so a bad edit here cannot leak a cross-department
// suggestion.
var roleAdjacency = map[id.RoleKey][]id.RoleKey{
	id.RoleMaster:         {id.RoleChiefOfficer},
	id.RoleChiefOfficer:   {id.RoleMaster, id.RoleSecondOfficer},
	id.RoleSecondOfficer:  {id.RoleChiefOfficer, id.RoleBosun},
	id.RoleBosun:          {id.RoleAbleSeaman, id.RoleSecondOfficer},
	id.RoleAbleSeaman:     {id.RoleBosun, id.RoleOrdinarySeaman},
	id.RoleOrdinarySeaman: {id.RoleAbleSeaman},

	id.RoleChiefEngineer:  {id.RoleSecondEngineer},
	id.RoleSecondEngineer: {id.RoleChiefEngineer, id.RoleThirdEngineer},
	id.RoleThirdEngineer:  {id.RoleSecondEngineer, id.RoleMotorman},
	id.RoleMotorman:       {id.RoleThirdEngineer, id.RoleElectrician},
	id.RoleElectrician:    {id.RoleSecondEngineer, id.RoleMotorman},

	id.RoleChiefCook: {id.RoleCook},
	id.RoleCook:      {id.RoleChiefCook, id.RoleMessman},
	id.RoleMessman:   {id.RoleCook},

	id.RoleChiefSteward: {id.RoleSteward},
	id.RoleSteward:      {id.RoleChiefSteward},
}

// AdjacentRoles returns the same-department neighbors of a role. Edges that
// would cross departments are dropped here regardless of the table content.
func AdjacentRoles(role id.RoleKey) []id.RoleKey {
	dept, ok := id.DepartmentOf(role)
	if !ok {
		return nil
	}
	var out []id.RoleKey
	for _, neighbor := range roleAdjacency[role] {
		if neighborDept, ok := id.DepartmentOf(neighbor); ok && neighborDept == dept {
			out = append(out, neighbor)
		}
	}
	return out
}
