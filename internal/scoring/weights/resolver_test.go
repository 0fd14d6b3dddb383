package weights

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
)

type fixtureSource struct {
	company map[id.RoleKey]Map
	global  map[id.RoleKey]Map
}

func (f *fixtureSource) CompanyWeights(_ id.CompanyID, role id.RoleKey) Map {
	return f.company[role]
}

func (f *fixtureSource) GlobalWeights(role id.RoleKey) Map {
	return f.global[role]
}

type ResolverSuite struct {
	suite.Suite
	company id.CompanyID
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.company = id.CompanyID(uuid.New())
}

func (s *ResolverSuite) assertNormalized(m Map) {
	s.T().Helper()
	s.InDelta(1.0, m.Sum(), 1e-4)
	for pillar, w := range m {
		s.GreaterOrEqualf(w, 0.0, "pillar %s negative", pillar)
	}
}

func (s *ResolverSuite) TestResolve() {
	s.Run("caller override wins over every scope", func() {
		r := NewResolver(&fixtureSource{
			company: map[id.RoleKey]Map{id.RoleBosun: {models.PillarCompliance: 1.0}},
			global:  map[id.RoleKey]Map{id.RoleBosun: {models.PillarSynergy: 1.0}},
		})
		override := Map{
			models.PillarAvailability: 0.5,
			models.PillarCompetency:   0.5,
		}
		got := r.Resolve(id.RoleBosun, s.company, override)
		s.assertNormalized(got)
		s.InDelta(0.5, got[models.PillarAvailability], 1e-9)
		s.Zero(got[models.PillarCompliance])
	})

	s.Run("company learned set beats global", func() {
		r := NewResolver(&fixtureSource{
			company: map[id.RoleKey]Map{id.RoleBosun: {
				models.PillarCompliance:   2,
				models.PillarAvailability: 2,
			}},
			global: map[id.RoleKey]Map{id.RoleBosun: {models.PillarSynergy: 1.0}},
		})
		got := r.Resolve(id.RoleBosun, s.company, nil)
		s.assertNormalized(got)
		s.InDelta(0.5, got[models.PillarCompliance], 1e-9)
	})

	s.Run("nil company skips the company scope", func() {
		r := NewResolver(&fixtureSource{
			company: map[id.RoleKey]Map{id.RoleBosun: {models.PillarCompliance: 1.0}},
			global:  map[id.RoleKey]Map{id.RoleBosun: {models.PillarSynergy: 1.0}},
		})
		got := r.Resolve(id.RoleBosun, id.CompanyID{}, nil)
		s.assertNormalized(got)
		s.InDelta(1.0, got[models.PillarSynergy], 1e-9)
	})

	s.Run("falls back to static default", func() {
		r := NewResolver(&fixtureSource{})
		got := r.Resolve(id.RoleMaster, s.company, nil)
		s.assertNormalized(got)
		s.InDelta(0.40, got[models.PillarAvailability], 1e-9)
		s.InDelta(0.15, got[models.PillarCompliance], 1e-9)
	})

	s.Run("zero-sum override falls through to default", func() {
		r := NewResolver(nil)
		got := r.Resolve(id.RoleMaster, s.company, Map{models.PillarSynergy: 0})
		s.assertNormalized(got)
		s.InDelta(0.25, got[models.PillarCompetency], 1e-9)
	})

	s.Run("negative values are clamped before renormalizing", func() {
		r := NewResolver(nil)
		got := r.Resolve(id.RoleMaster, s.company, Map{
			models.PillarAvailability: 0.8,
			models.PillarCompliance:   -0.5,
			models.PillarCompetency:   0.2,
		})
		s.assertNormalized(got)
		s.Zero(got[models.PillarCompliance])
		s.InDelta(0.8, got[models.PillarAvailability], 1e-9)
	})
}

func TestMapNormalize(t *testing.T) {
	t.Run("rescales to exactly one", func(t *testing.T) {
		m := Map{"a": 3, "b": 1}
		got, ok := m.Normalize()
		if !ok {
			t.Fatal("expected normalizable map")
		}
		if math.Abs(got.Sum()-1.0) > 1e-9 {
			t.Fatalf("sum = %f, want 1.0", got.Sum())
		}
		if math.Abs(got["a"]-0.75) > 1e-9 {
			t.Fatalf("a = %f, want 0.75", got["a"])
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		m := Map{"a": 3, "b": 1}
		_, _ = m.Normalize()
		if m["a"] != 3 {
			t.Fatalf("receiver mutated: a = %f", m["a"])
		}
	})
}
