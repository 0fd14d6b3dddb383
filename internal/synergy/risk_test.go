package synergy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crewfit/internal/scoring/models"
)

var riskNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestScoreOperationalRisk(t *testing.T) {
	cfg := DefaultRiskConfig()

	t.Run("clean candidate keeps the full score", func(t *testing.T) {
		candidate := &models.Candidate{
			Certificates: []models.Certificate{
				{Type: "STCW_BASIC", Expires: riskNow.AddDate(1, 0, 0), Status: models.CertificateVerified},
			},
			Availability: models.Availability{State: models.AvailabilityAvailable},
			Traits:       models.TraitVector{models.DimConflictRisk: 0.2, models.DimStability: 0.8},
		}
		score, notes := ScoreOperationalRisk(cfg, candidate, riskNow)
		assert.Equal(t, 100.0, score)
		assert.Empty(t, notes)
	})

	t.Run("expiring certificates deduct up to the cap", func(t *testing.T) {
		expSoon := riskNow.AddDate(0, 1, 0)
		candidate := &models.Candidate{
			Certificates: []models.Certificate{
				{Type: "A", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "B", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "C", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "D", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "E", Expires: expSoon, Status: models.CertificateVerified},
			},
			Availability: models.Availability{State: models.AvailabilityAvailable},
		}
		score, notes := ScoreOperationalRisk(cfg, candidate, riskNow)
		// 5 certificates x 5 points would be 25, capped at 15.
		assert.Equal(t, 85.0, score)
		assert.Len(t, notes, 1)
	})

	t.Run("unresolved contract end deducts", func(t *testing.T) {
		candidate := &models.Candidate{
			Availability: models.Availability{State: models.AvailabilityOnContract},
		}
		score, _ := ScoreOperationalRisk(cfg, candidate, riskNow)
		assert.Equal(t, 90.0, score)
	})

	t.Run("conflict risk and low stability deduct independently", func(t *testing.T) {
		candidate := &models.Candidate{
			Availability: models.Availability{State: models.AvailabilityAvailable},
			Traits: models.TraitVector{
				models.DimConflictRisk: 0.9,
				models.DimStability:    0.2,
			},
		}
		score, notes := ScoreOperationalRisk(cfg, candidate, riskNow)
		assert.Equal(t, 75.0, score)
		assert.Len(t, notes, 2)
	})

	t.Run("high early termination ratio deducts", func(t *testing.T) {
		candidate := &models.Candidate{
			Availability: models.Availability{State: models.AvailabilityAvailable},
			Contracts: []models.ContractRecord{
				{Months: 6, EndedEarly: true},
				{Months: 6, EndedEarly: true},
				{Months: 6},
			},
		}
		score, _ := ScoreOperationalRisk(cfg, candidate, riskNow)
		assert.Equal(t, 80.0, score)
	})

	t.Run("stacked deductions never push below zero", func(t *testing.T) {
		expSoon := riskNow.AddDate(0, 0, 10)
		candidate := &models.Candidate{
			Certificates: []models.Certificate{
				{Type: "A", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "B", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "C", Expires: expSoon, Status: models.CertificateVerified},
				{Type: "D", Expires: expSoon, Status: models.CertificateVerified},
			},
			Availability: models.Availability{State: models.AvailabilityOnContract},
			Traits: models.TraitVector{
				models.DimConflictRisk: 1.0,
				models.DimStability:    0.0,
			},
			Contracts: []models.ContractRecord{
				{Months: 1, EndedEarly: true},
				{Months: 1, EndedEarly: true},
			},
		}
		score, _ := ScoreOperationalRisk(cfg, candidate, riskNow)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.Equal(t, 100.0-15-10-15-20-10, score)
	})
}
