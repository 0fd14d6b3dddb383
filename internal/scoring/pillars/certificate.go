// Package pillars contains the four independent fit scorers. Each returns a
// score bounded to [0,1] plus a structured evidence payload; nothing is
// discarded before the orchestrator assembles the final result.
package pillars

import (
	"time"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/profile"
)

const (
	expiringCredit          = 0.7
	missingMandatoryPenalty = 0.25
)

// CertificateScorer classifies required certificates against a candidate's
// holdings. Hard-blocked deficiencies are collected separately from the
// numeric score; their presence is what triggers downstream blocking.
type CertificateScorer struct {
	// ExpiryWarning marks still-valid certificates as expiring_soon when no
	// minimum validity is configured on the requirement.
	ExpiryWarning time.Duration
}

// CertificateResult is the compliance pillar output.
type CertificateResult struct {
	Score       float64
	Evidence    []models.CertificateEvidence
	HardBlocked []models.Blocker
}

// Score evaluates the candidate's holdings against the profile requirements
// at the given instant. An empty requirement list scores a neutral 1.0: the
// profile demands nothing, so nothing can be deficient.
func (s CertificateScorer) Score(candidate *models.Candidate, requirements []profile.CertificateRequirement, now time.Time) CertificateResult {
	if len(requirements) == 0 {
		return CertificateResult{Score: 1.0}
	}

	held := make(map[string]models.Certificate, len(candidate.Certificates))
	for _, cert := range candidate.Certificates {
		if cert.Status == models.CertificateRejected {
			continue
		}
		// Keep the longest-valid instance per type.
		if existing, ok := held[cert.Type]; !ok || cert.Expires.After(existing.Expires) {
			held[cert.Type] = cert
		}
	}

	result := CertificateResult{}
	matched, expiring, missingMandatory := 0, 0, 0

	for _, req := range requirements {
		finding := s.classify(held, req, now)
		result.Evidence = append(result.Evidence, models.CertificateEvidence{
			Type:      req.Type,
			Finding:   finding,
			Mandatory: req.Mandatory,
			HardBlock: req.HardBlock,
			ReasonKey: req.ReasonKey,
		})

		switch finding {
		case models.CertMatched:
			matched++
		case models.CertExpiringSoon:
			expiring++
		case models.CertMissing, models.CertExpired:
			if req.Mandatory {
				missingMandatory++
			}
		}

		if req.HardBlock && finding != models.CertMatched {
			result.HardBlocked = append(result.HardBlocked, models.Blocker{
				CertificateType: req.Type,
				Finding:         finding,
				ReasonKey:       req.ReasonKey,
			})
		}
	}

	score := (float64(matched) + expiringCredit*float64(expiring)) / float64(len(requirements))
	score -= missingMandatoryPenalty * float64(missingMandatory)
	result.Score = clamp01(score)
	return result
}

// ScoreHeld grades held certificates when no requirement profile applies.
// Valid certificates count fully, expiring ones at partial credit, expired
// ones not at all. Without requirements nothing can hard-block, and a
// candidate with no holdings scores neutral.
func (s CertificateScorer) ScoreHeld(candidate *models.Candidate, now time.Time) CertificateResult {
	result := CertificateResult{}
	graded, credit := 0, 0.0

	for _, cert := range candidate.Certificates {
		if cert.Status == models.CertificateRejected {
			continue
		}
		finding := models.CertMatched
		switch {
		case cert.Expired(now):
			finding = models.CertExpired
		case s.ExpiryWarning > 0 && cert.ExpiresWithin(now, s.ExpiryWarning):
			finding = models.CertExpiringSoon
			credit += expiringCredit
		default:
			credit += 1.0
		}
		graded++
		result.Evidence = append(result.Evidence, models.CertificateEvidence{
			Type:    cert.Type,
			Finding: finding,
		})
	}

	if graded == 0 {
		result.Score = 0.5
		return result
	}
	result.Score = clamp01(credit / float64(graded))
	return result
}

func (s CertificateScorer) classify(held map[string]models.Certificate, req profile.CertificateRequirement, now time.Time) models.CertificateFinding {
	cert, ok := held[req.Type]
	if !ok {
		return models.CertMissing
	}
	if cert.Expired(now) {
		return models.CertExpired
	}
	if req.MinValidityMonths > 0 {
		if cert.Expires.Before(now.AddDate(0, req.MinValidityMonths, 0)) {
			return models.CertExpiringSoon
		}
	} else if s.ExpiryWarning > 0 && cert.ExpiresWithin(now, s.ExpiryWarning) {
		return models.CertExpiringSoon
	}
	return models.CertMatched
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
