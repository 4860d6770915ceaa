package frame

// Well-known frame tags. The registry does not mandate them; RegisterBuiltins
// installs them for applications that want the conventional assignments.
const (
	// ECEF is the conventional tag for the earth-centered earth-fixed frame.
	ECEF = uint8(0)
	// WGS84Geodetic is the conventional tag for WGS-84 geodetic coordinates.
	WGS84Geodetic = uint8(1)
)

// RegisterBuiltins installs the conventional descriptors for ECEF and
// WGS-84-geodetic at one-meter LOD-0 cells. Idempotent; fails only if an
// application already bound those tags to different descriptors.
func RegisterBuiltins() error {
	if err := Register(ECEF, Descriptor{
		Name:        "ecef",
		CRS:         "WGS-84",
		Description: "earth-centered earth-fixed cartesian",
		EarthFixed:  true,
		Scale:       1.0,
	}); err != nil {
		return err
	}

	return Register(WGS84Geodetic, Descriptor{
		Name:        "wgs84-geodetic",
		CRS:         "WGS-84",
		Description: "geodetic latitude/longitude/height",
		EarthFixed:  true,
		Scale:       1.0,
	})
}
