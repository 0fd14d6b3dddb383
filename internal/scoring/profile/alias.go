package profile

import (
	"strings"

	id "crewfit/pkg/domain"
)

// vesselTypeAliases maps free-text vessel-type strings from fleet data onto
// canonical keys. Lookup is case-insensitive on the trimmed input. Types
// absent from this table resolve to no profile, which routes the evaluation
// through legacy scoring.
var vesselTypeAliases = map[string]id.VesselTypeKey{
	"bulk carrier":     id.VesselTypeBulkCarrier,
	"bulker":           id.VesselTypeBulkCarrier,
	"bulk_carrier":     id.VesselTypeBulkCarrier,
	"container":        id.VesselTypeContainer,
	"container ship":   id.VesselTypeContainer,
	"containership":    id.VesselTypeContainer,
	"feeder":           id.VesselTypeContainer,
	"crude tanker":     id.VesselTypeCrudeTanker,
	"crude oil tanker": id.VesselTypeCrudeTanker,
	"vlcc":             id.VesselTypeCrudeTanker,
	"suezmax":          id.VesselTypeCrudeTanker,
	"aframax":          id.VesselTypeCrudeTanker,
	"product tanker":   id.VesselTypeProductTanker,
	"chemical tanker":  id.VesselTypeProductTanker,
	"mr tanker":        id.VesselTypeProductTanker,
	"lng carrier":      id.VesselTypeLNGCarrier,
	"lng":              id.VesselTypeLNGCarrier,
	"lpg carrier":      id.VesselTypeLNGCarrier,
	"general cargo":    id.VesselTypeGeneralCargo,
	"multipurpose":     id.VesselTypeGeneralCargo,
	"mpp":              id.VesselTypeGeneralCargo,
	"offshore":         id.VesselTypeOffshore,
	"psv":              id.VesselTypeOffshore,
	"ahts":             id.VesselTypeOffshore,
	"supply vessel":    id.VesselTypeOffshore,
	"yacht":            id.VesselTypeYacht,
	"motor yacht":      id.VesselTypeYacht,
	"sailing yacht":    id.VesselTypeYacht,
	"superyacht":       id.VesselTypeYacht,
}

// CanonicalVesselType maps a free-text vessel type to its canonical key.
// ok is false when the type has no mapping.
func CanonicalVesselType(raw string) (id.VesselTypeKey, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}
	if key, ok := vesselTypeAliases[normalized]; ok {
		return key, true
	}
	// Canonical keys pass through unchanged.
	if key := id.VesselTypeKey(normalized); key.IsValid() {
		return key, true
	}
	return "", false
}
