package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/suez-scraper/internal/extract"
	"github.com/UnknownOlympus/suez-scraper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func document(t *testing.T, body string) models.MapDocument {
	t.Helper()

	var doc models.MapDocument
	require.NoError(t, json.Unmarshal([]byte(body), &doc))

	return doc
}

func TestNormalizeIconID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "wrapped", in: "{ABC-123}", want: "ABC-123"},
		{name: "bare", in: "ABC-123", want: "ABC-123"},
		{name: "nested braces", in: "{{A}}", want: "A"},
		{name: "inner braces", in: "A{B}C", want: "ABC"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.NormalizeIconID(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, extract.NormalizeIconID(got), "normalization must be idempotent")
		})
	}
}

func TestLocations(t *testing.T) {
	t.Run("one record per entry in source order", func(t *testing.T) {
		doc := document(t, `{"PoiItem":[
			{"IconId":"{A}","Name":"Hume Landfill","Lat":-35.38,"Lng":149.15,"Extra":true},
			{"IconId":"B","Name":"Kemps Creek","Lat":-33.87,"Lng":150.79},
			{"IconId":"{A}","Name":"Lucas Heights","Lat":-34.05,"Lng":151}
		]}`)

		locations, err := extract.Locations(doc)

		require.NoError(t, err)
		require.Len(t, locations, 3)
		assert.Equal(t, models.ServiceLocation{
			IconID:      "A",
			ServiceName: "Hume Landfill",
			Coordinates: models.Coordinates{Latitude: -35.38, Longitude: 149.15},
		}, locations[0])
		assert.Equal(t, "B", locations[1].IconID)
		assert.Equal(t, "A", locations[2].IconID)
		assert.InDelta(t, 151.0, locations[2].Longitude, 0)
	})

	t.Run("empty array", func(t *testing.T) {
		locations, err := extract.Locations(document(t, `{"PoiItem":[]}`))

		require.NoError(t, err)
		assert.Empty(t, locations)
	})

	t.Run("null name is kept empty", func(t *testing.T) {
		locations, err := extract.Locations(
			document(t, `{"PoiItem":[{"IconId":"{A}","Name":null,"Lat":1,"Lng":2}]}`),
		)

		require.NoError(t, err)
		assert.Empty(t, locations[0].ServiceName)
	})

	t.Run("missing collection", func(t *testing.T) {
		locations, err := extract.Locations(document(t, `{"MapIcon":[]}`))

		require.Nil(t, locations)
		require.ErrorIs(t, err, extract.ErrMissingKey)
		assert.Contains(t, err.Error(), "PoiItem")
	})

	t.Run("missing field", func(t *testing.T) {
		locations, err := extract.Locations(
			document(t, `{"PoiItem":[{"IconId":"{A}","Name":"x","Lat":1,"Lng":2},{"IconId":"{B}","Name":"y","Lat":1}]}`),
		)

		require.Nil(t, locations)
		require.ErrorIs(t, err, extract.ErrMissingKey)
		assert.Contains(t, err.Error(), "PoiItem[1].Lng")
	})

	t.Run("collection is not an array", func(t *testing.T) {
		_, err := extract.Locations(document(t, `{"PoiItem":{"IconId":"{A}"}}`))

		require.ErrorIs(t, err, extract.ErrInvalidField)
	})

	t.Run("collection is null", func(t *testing.T) {
		_, err := extract.Locations(document(t, `{"PoiItem":null}`))

		require.ErrorIs(t, err, extract.ErrInvalidField)
	})

	t.Run("entry is not an object", func(t *testing.T) {
		_, err := extract.Locations(document(t, `{"PoiItem":["A"]}`))

		require.ErrorIs(t, err, extract.ErrInvalidField)
		assert.Contains(t, err.Error(), "PoiItem[0] is not an object")
	})

	t.Run("latitude is not a number", func(t *testing.T) {
		_, err := extract.Locations(
			document(t, `{"PoiItem":[{"IconId":"{A}","Name":"x","Lat":"north","Lng":2}]}`),
		)

		require.ErrorIs(t, err, extract.ErrInvalidField)
	})

	t.Run("null icon id", func(t *testing.T) {
		_, err := extract.Locations(
			document(t, `{"PoiItem":[{"IconId":null,"Name":"x","Lat":1,"Lng":2}]}`),
		)

		require.ErrorIs(t, err, extract.ErrInvalidField)
		assert.Contains(t, err.Error(), "PoiItem[0].IconId is null")
	})
}

func TestTypes(t *testing.T) {
	t.Run("one record per entry in source order", func(t *testing.T) {
		doc := document(t, `{"MapIcon":[
			{"Id":"{A}","Legend":"Recycling","Image":"/-/media/icons/recycling.png"},
			{"Id":"{B}","Legend":"Landfill","Image":"/-/media/icons/landfill.png"}
		]}`)

		types, err := extract.Types(doc)

		require.NoError(t, err)
		assert.Equal(t, []models.ServiceType{
			{IconID: "A", ServiceType: "Recycling", ServiceIcon: "/-/media/icons/recycling.png"},
			{IconID: "B", ServiceType: "Landfill", ServiceIcon: "/-/media/icons/landfill.png"},
		}, types)
	})

	t.Run("missing collection", func(t *testing.T) {
		_, err := extract.Types(document(t, `{"PoiItem":[]}`))

		require.ErrorIs(t, err, extract.ErrMissingKey)
		assert.Contains(t, err.Error(), "MapIcon")
	})

	t.Run("missing legend", func(t *testing.T) {
		_, err := extract.Types(document(t, `{"MapIcon":[{"Id":"{A}","Image":"a.png"}]}`))

		require.ErrorIs(t, err, extract.ErrMissingKey)
		assert.Contains(t, err.Error(), "MapIcon[0].Legend")
	})

	t.Run("id is not a string", func(t *testing.T) {
		_, err := extract.Types(document(t, `{"MapIcon":[{"Id":7,"Legend":"x","Image":"a.png"}]}`))

		require.ErrorIs(t, err, extract.ErrInvalidField)
	})
}
