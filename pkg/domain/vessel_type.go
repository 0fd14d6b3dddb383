package domain

// VesselTypeKey is a canonical vessel-type identifier. Free-text vessel
// types coming from external fleet data are mapped onto these keys by the
// requirement-profile resolver's alias table; types that do not map stay
// un-profiled and score through the legacy path.
type VesselTypeKey string

const (
	VesselTypeBulkCarrier   VesselTypeKey = "bulk_carrier"
	VesselTypeContainer     VesselTypeKey = "container"
	VesselTypeCrudeTanker   VesselTypeKey = "crude_tanker"
	VesselTypeProductTanker VesselTypeKey = "product_tanker"
	VesselTypeLNGCarrier    VesselTypeKey = "lng_carrier"
	VesselTypeGeneralCargo  VesselTypeKey = "general_cargo"
	VesselTypeOffshore      VesselTypeKey = "offshore"
	VesselTypeYacht         VesselTypeKey = "yacht"
)

// IsValid checks if the key is one of the supported canonical types.
func (v VesselTypeKey) IsValid() bool {
	switch v {
	case VesselTypeBulkCarrier, VesselTypeContainer, VesselTypeCrudeTanker,
		VesselTypeProductTanker, VesselTypeLNGCarrier, VesselTypeGeneralCargo,
		VesselTypeOffshore, VesselTypeYacht:
		return true
	}
	return false
}

func (v VesselTypeKey) String() string { return string(v) }

// IsNil returns true if the key is empty.
func (v VesselTypeKey) IsNil() bool { return v == "" }
