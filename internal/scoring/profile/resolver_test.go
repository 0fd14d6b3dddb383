package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/profile"
	templateStore "crewfit/internal/scoring/store/template"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

type ResolverSuite struct {
	suite.Suite
	store    *templateStore.InMemoryTemplateStore
	resolver *profile.Resolver
	company  id.CompanyID
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.store = templateStore.New()
	s.resolver = profile.NewResolver(s.store, nil)
	s.company = id.CompanyID(uuid.New())

	s.store.PutTemplate(&profile.Template{
		VesselType: id.VesselTypeCrudeTanker,
		Version:    2,
		Status:     profile.TemplatePublished,
		Profile:    baseProfile(),
	})
	// Draft newer version must never win over the published one.
	s.store.PutTemplate(&profile.Template{
		VesselType: id.VesselTypeCrudeTanker,
		Version:    3,
		Status:     profile.TemplateDraft,
		Profile:    baseProfile(),
	})
}

func baseProfile() profile.RequirementProfile {
	return profile.RequirementProfile{
		VesselType: id.VesselTypeCrudeTanker,
		Certificates: []profile.CertificateRequirement{
			{Type: "STCW_BASIC", MinValidityMonths: 6, Mandatory: true, HardBlock: true, ReasonKey: "stcw_basic_missing"},
			{Type: "TANKER_FAMILIARIZATION", MinValidityMonths: 3, Mandatory: true},
			{Type: "MEDICAL_FIRST_AID", Mandatory: false},
		},
		Experience: profile.ExperienceRequirement{VesselTypeMonths: 12, TotalMonths: 24},
		BehaviorThresholds: map[string]float64{
			models.DimSafetyAwareness: 0.6,
			models.DimDiscipline:      0.5,
		},
		Weights: weights.Map{
			models.PillarCompliance:   0.30,
			models.PillarCompetency:   0.30,
			models.PillarSynergy:      0.20,
			models.PillarAvailability: 0.20,
		},
	}
}

func (s *ResolverSuite) TestResolve() {
	ctx := context.Background()

	s.Run("unmapped vessel type yields no profile", func() {
		p, err := s.resolver.Resolve(ctx, "hovercraft", s.company)
		s.NoError(err)
		s.Nil(p)
	})

	s.Run("alias maps free text to the canonical template", func() {
		p, err := s.resolver.Resolve(ctx, "  Crude Oil Tanker ", s.company)
		s.NoError(err)
		s.Require().NotNil(p)
		s.Equal(id.VesselTypeCrudeTanker, p.VesselType)
		s.Len(p.Certificates, 3)
	})

	s.Run("missing published template yields no profile", func() {
		p, err := s.resolver.Resolve(ctx, "yacht", s.company)
		s.NoError(err)
		s.Nil(p)
	})

	s.Run("override merges certificates by type without dropping template entries", func() {
		s.store.PutOverride(&profile.Override{
			CompanyID:  s.company,
			VesselType: id.VesselTypeCrudeTanker,
			Certificates: []profile.CertificateRequirement{
				// Tighten an existing requirement.
				{Type: "TANKER_FAMILIARIZATION", MinValidityMonths: 9, Mandatory: true, HardBlock: true, ReasonKey: "tanker_fam_required"},
				// Add a company-specific one.
				{Type: "COMPANY_SAFETY_INDUCTION", Mandatory: true},
			},
		})

		p, err := s.resolver.Resolve(ctx, "vlcc", s.company)
		s.NoError(err)
		s.Require().NotNil(p)
		s.Len(p.Certificates, 4)

		byType := map[string]profile.CertificateRequirement{}
		for _, cert := range p.Certificates {
			byType[cert.Type] = cert
		}
		s.Equal(9, byType["TANKER_FAMILIARIZATION"].MinValidityMonths)
		s.True(byType["TANKER_FAMILIARIZATION"].HardBlock)
		s.Contains(byType, "STCW_BASIC")
		s.Contains(byType, "COMPANY_SAFETY_INDUCTION")
	})

	s.Run("override weights merge key-by-key and renormalize", func() {
		s.store.PutOverride(&profile.Override{
			CompanyID:  s.company,
			VesselType: id.VesselTypeCrudeTanker,
			Weights:    weights.Map{models.PillarCompliance: 0.50},
		})

		p, err := s.resolver.Resolve(ctx, "crude tanker", s.company)
		s.NoError(err)
		s.Require().NotNil(p)
		s.InDelta(1.0, p.Weights.Sum(), 1e-4)
		// Compliance was raised relative to the untouched pillars.
		s.Greater(p.Weights[models.PillarCompliance], p.Weights[models.PillarCompetency])
	})

	s.Run("override never mutates the stored template", func() {
		s.store.PutOverride(&profile.Override{
			CompanyID:  s.company,
			VesselType: id.VesselTypeCrudeTanker,
			Certificates: []profile.CertificateRequirement{
				{Type: "STCW_BASIC", MinValidityMonths: 12, Mandatory: true, HardBlock: true, ReasonKey: "stcw_basic_missing"},
			},
		})
		_, err := s.resolver.Resolve(ctx, "crude tanker", s.company)
		s.NoError(err)

		clean, err := s.resolver.Resolve(ctx, "crude tanker", id.CompanyID{})
		s.NoError(err)
		s.Require().NotNil(clean)
		for _, cert := range clean.Certificates {
			if cert.Type == "STCW_BASIC" {
				s.Equal(6, cert.MinValidityMonths)
			}
		}
	})

	s.Run("invalid merged profile is rejected", func() {
		s.store.PutOverride(&profile.Override{
			CompanyID:  s.company,
			VesselType: id.VesselTypeCrudeTanker,
			Certificates: []profile.CertificateRequirement{
				// hard_block without mandatory violates the profile invariant.
				{Type: "STCW_BASIC", Mandatory: false, HardBlock: true, ReasonKey: "stcw_basic_missing"},
			},
		})
		p, err := s.resolver.Resolve(ctx, "crude tanker", s.company)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Nil(p)
	})
}
