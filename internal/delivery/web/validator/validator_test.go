package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchQuery struct {
	Disease string  `query:"disease" validate:"required"`
	Lat     float64 `query:"lat" validate:"min=-90,max=90"`
	Lon     float64 `query:"lon" validate:"min=-180,max=180"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&searchQuery{Disease: "cardio", Lat: 11.03, Lon: 77.03}))

	err := v.Validate(&searchQuery{Lat: 91, Lon: 77})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "required", fields["disease"])
	assert.Equal(t, "max=90", fields["lat"])
	assert.NotContains(t, fields, "lon")
}

type coordinateQuery struct {
	Lat string `query:"lat" validate:"omitempty,latitude"`
	Lon string `query:"lon" validate:"omitempty,longitude"`
}

func TestValidate_Coordinates(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&coordinateQuery{Lat: "11.03", Lon: "-77.5"}))
	require.NoError(t, v.Validate(&coordinateQuery{}))

	err := v.Validate(&coordinateQuery{Lat: "91", Lon: "abc"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "latitude", fields["lat"])
	assert.Equal(t, "longitude", fields["lon"])
}

func TestFieldErrors_OtherError(t *testing.T) {
	assert.Nil(t, FieldErrors(assert.AnError))
}
