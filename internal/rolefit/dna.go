package rolefit

import (
	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
)

// builtinDNA is the default role-DNA library, version 1. Profiles are
// heuristic and tuned with crewing staff; a config surface may replace them
// per tenant, but the engine always has a complete default set.
var builtinDNA = map[id.RoleKey]DNAProfile{
	id.RoleMaster: {
		Role: id.RoleMaster, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimLeadership:      RelevanceCritical,
			models.DimStressTolerance: RelevanceCritical,
			models.DimCommunication:   RelevanceHigh,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimDiscipline:      RelevanceModerate,
			models.DimAdaptability:    RelevanceModerate,
		},
		TechnicalWeight: 0.25, BehavioralWeight: 0.25, LeadershipWeight: 0.35, SafetyWeight: 0.15,
	},
	id.RoleChiefOfficer: {
		Role: id.RoleChiefOfficer, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimLeadership:      RelevanceCritical,
			models.DimDiscipline:      RelevanceHigh,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimCommunication:   RelevanceHigh,
			models.DimStressTolerance: RelevanceModerate,
			models.DimTeamwork:        RelevanceModerate,
		},
		TechnicalWeight: 0.30, BehavioralWeight: 0.25, LeadershipWeight: 0.30, SafetyWeight: 0.15,
	},
	id.RoleSecondOfficer: {
		Role: id.RoleSecondOfficer, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceCritical,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimCommunication:   RelevanceModerate,
			models.DimTeamwork:        RelevanceModerate,
			models.DimLeadership:      RelevanceLow,
		},
		TechnicalWeight: 0.40, BehavioralWeight: 0.25, LeadershipWeight: 0.15, SafetyWeight: 0.20,
	},
	id.RoleBosun: {
		Role: id.RoleBosun, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimTeamwork:        RelevanceCritical,
			models.DimDiscipline:      RelevanceHigh,
			models.DimLeadership:      RelevanceHigh,
			models.DimSafetyAwareness: RelevanceModerate,
			models.DimStressTolerance: RelevanceLow,
		},
		TechnicalWeight: 0.35, BehavioralWeight: 0.30, LeadershipWeight: 0.20, SafetyWeight: 0.15,
	},
	id.RoleAbleSeaman: {
		Role: id.RoleAbleSeaman, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimTeamwork:        RelevanceCritical,
			models.DimDiscipline:      RelevanceHigh,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimAdaptability:    RelevanceModerate,
			models.DimLeadership:      RelevanceLow,
		},
		TechnicalWeight: 0.40, BehavioralWeight: 0.35, LeadershipWeight: 0.05, SafetyWeight: 0.20,
	},
	id.RoleOrdinarySeaman: {
		Role: id.RoleOrdinarySeaman, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceHigh,
			models.DimTeamwork:        RelevanceHigh,
			models.DimAdaptability:    RelevanceModerate,
			models.DimSafetyAwareness: RelevanceModerate,
		},
		TechnicalWeight: 0.35, BehavioralWeight: 0.40, LeadershipWeight: 0.05, SafetyWeight: 0.20,
	},
	id.RoleChiefEngineer: {
		Role: id.RoleChiefEngineer, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceCritical,
			models.DimStressTolerance: RelevanceCritical,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimLeadership:      RelevanceHigh,
			models.DimTeamwork:        RelevanceLow,
			models.DimCommunication:   RelevanceLow,
		},
		TechnicalWeight: 0.45, BehavioralWeight: 0.15, LeadershipWeight: 0.20, SafetyWeight: 0.20,
	},
	id.RoleSecondEngineer: {
		Role: id.RoleSecondEngineer, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceCritical,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimStressTolerance: RelevanceHigh,
			models.DimTeamwork:        RelevanceModerate,
			models.DimLeadership:      RelevanceLow,
		},
		TechnicalWeight: 0.50, BehavioralWeight: 0.15, LeadershipWeight: 0.15, SafetyWeight: 0.20,
	},
	id.RoleThirdEngineer: {
		Role: id.RoleThirdEngineer, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceHigh,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimAdaptability:    RelevanceModerate,
			models.DimTeamwork:        RelevanceModerate,
		},
		TechnicalWeight: 0.50, BehavioralWeight: 0.20, LeadershipWeight: 0.10, SafetyWeight: 0.20,
	},
	id.RoleMotorman: {
		Role: id.RoleMotorman, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceHigh,
			models.DimSafetyAwareness: RelevanceHigh,
			models.DimTeamwork:        RelevanceModerate,
			models.DimStressTolerance: RelevanceLow,
		},
		TechnicalWeight: 0.45, BehavioralWeight: 0.25, LeadershipWeight: 0.05, SafetyWeight: 0.25,
	},
	id.RoleElectrician: {
		Role: id.RoleElectrician, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceCritical,
			models.DimSafetyAwareness: RelevanceCritical,
			models.DimAdaptability:    RelevanceModerate,
			models.DimTeamwork:        RelevanceLow,
		},
		TechnicalWeight: 0.55, BehavioralWeight: 0.15, LeadershipWeight: 0.05, SafetyWeight: 0.25,
	},
	id.RoleChiefCook: {
		Role: id.RoleChiefCook, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimDiscipline:      RelevanceHigh,
			models.DimAdaptability:    RelevanceHigh,
			models.DimTeamwork:        RelevanceHigh,
			models.DimStressTolerance: RelevanceModerate,
			models.DimLeadership:      RelevanceModerate,
		},
		TechnicalWeight: 0.35, BehavioralWeight: 0.40, LeadershipWeight: 0.15, SafetyWeight: 0.10,
	},
	id.RoleCook: {
		Role: id.RoleCook, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimAdaptability:    RelevanceHigh,
			models.DimTeamwork:        RelevanceHigh,
			models.DimDiscipline:      RelevanceModerate,
			models.DimStressTolerance: RelevanceModerate,
		},
		TechnicalWeight: 0.35, BehavioralWeight: 0.45, LeadershipWeight: 0.05, SafetyWeight: 0.15,
	},
	id.RoleMessman: {
		Role: id.RoleMessman, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimTeamwork:        RelevanceHigh,
			models.DimAdaptability:    RelevanceModerate,
			models.DimCommunication:   RelevanceModerate,
			models.DimDiscipline:      RelevanceLow,
		},
		TechnicalWeight: 0.20, BehavioralWeight: 0.60, LeadershipWeight: 0.05, SafetyWeight: 0.15,
	},
	id.RoleChiefSteward: {
		Role: id.RoleChiefSteward, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimCommunication:   RelevanceCritical,
			models.DimTeamwork:        RelevanceHigh,
			models.DimLeadership:      RelevanceHigh,
			models.DimAdaptability:    RelevanceModerate,
			models.DimDiscipline:      RelevanceModerate,
		},
		TechnicalWeight: 0.20, BehavioralWeight: 0.45, LeadershipWeight: 0.25, SafetyWeight: 0.10,
	},
	id.RoleSteward: {
		Role: id.RoleSteward, Version: 1,
		Dimensions: map[string]Relevance{
			models.DimCommunication:   RelevanceHigh,
			models.DimTeamwork:        RelevanceHigh,
			models.DimAdaptability:    RelevanceHigh,
			models.DimDiscipline:      RelevanceLow,
		},
		TechnicalWeight: 0.20, BehavioralWeight: 0.55, LeadershipWeight: 0.05, SafetyWeight: 0.20,
	},
}

// DefaultDNA returns the builtin role-DNA library.
func DefaultDNA() map[id.RoleKey]DNAProfile {
	out := make(map[id.RoleKey]DNAProfile, len(builtinDNA))
	for k, v := range builtinDNA {
		out[k] = v
	}
	return out
}
