package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterBuiltins(t *testing.T) {
	require.NoError(t, RegisterBuiltins())
	require.NoError(t, RegisterBuiltins(), "builtins are idempotent")

	ecef, err := Get(ECEF)
	require.NoError(t, err)
	require.Equal(t, "ecef", ecef.Name)
	require.True(t, ecef.EarthFixed)

	geo, err := Get(WGS84Geodetic)
	require.NoError(t, err)
	require.Equal(t, "wgs84-geodetic", geo.Name)
}
