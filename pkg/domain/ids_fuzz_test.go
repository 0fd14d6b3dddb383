package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseCandidateID checks that parsing never panics on arbitrary input
// and that accepted values survive a round-trip.
func FuzzParseCandidateID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE evaluations;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		candidate, err := ParseCandidateID(input)
		if err == nil {
			roundTrip, err2 := ParseCandidateID(candidate.String())
			if err2 != nil {
				t.Errorf("valid id failed round-trip: %v", err2)
			}
			if roundTrip != candidate {
				t.Error("round-trip changed id value")
			}
		}

		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseAllIDs checks every ID type validates identically; they share
// one underlying parser and must not drift.
func FuzzParseAllIDs(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("")
	f.Add("invalid")

	f.Fuzz(func(t *testing.T, input string) {
		_, errCandidate := ParseCandidateID(input)
		_, errVessel := ParseVesselID(input)
		_, errCompany := ParseCompanyID(input)
		_, errEvaluation := ParseEvaluationID(input)

		if errCandidate == nil {
			if errVessel != nil || errCompany != nil || errEvaluation != nil {
				t.Error("inconsistent parsing across id types")
			}
		}
		if errCandidate != nil {
			if errVessel == nil || errCompany == nil || errEvaluation == nil {
				t.Error("inconsistent rejection across id types")
			}
		}
	})
}
