package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestToNumeric(t *testing.T) {
	assert.Nil(t, ToNumeric(nil))
	assert.Nil(t, ToNumeric(strPtr("not a number")))
	assert.Equal(t, 4.5, *ToNumeric(strPtr("4.5")))
	assert.Equal(t, 999.0, *ToNumeric(strPtr(" 999 ")))
}

func TestToDate(t *testing.T) {
	assert.Nil(t, ToDate(nil))
	assert.Nil(t, ToDate(strPtr("not a date")))

	d := ToDate(strPtr("2013-09-17"))
	require.NotNil(t, d)
	assert.Equal(t, 2013, d.Year())
	assert.Equal(t, 9, int(d.Month()))
	assert.Equal(t, 17, d.Day())
}

func TestRoundedMean(t *testing.T) {
	assert.Nil(t, RoundedMean(nil))
	assert.Nil(t, RoundedMean([]*float64{nil, nil}))

	mean := RoundedMean([]*float64{floatPtr(4.0), nil, floatPtr(6.0)})
	require.NotNil(t, mean)
	assert.Equal(t, 5.0, *mean)

	mean = RoundedMean([]*float64{floatPtr(1.0), floatPtr(2.0)})
	require.NotNil(t, mean)
	assert.Equal(t, 2.0, *mean, "1.5 rounds to the even neighbour 2")

	mean = RoundedMean([]*float64{floatPtr(2.0), floatPtr(3.0)})
	require.NotNil(t, mean)
	assert.Equal(t, 2.0, *mean, "2.5 rounds to the even neighbour 2, not 3")
}

func TestImputeGameRowsNumeric(t *testing.T) {
	rows := []GameRow{
		{GameName: "A", Rating: floatPtr(4.0)},
		{GameName: "B"},
		{GameName: "C", Rating: floatPtr(6.0)},
	}
	ImputeGameRows(rows)

	require.NotNil(t, rows[1].Rating)
	assert.Equal(t, 5.0, *rows[1].Rating, "null rating filled with rounded column mean")
	assert.Equal(t, 4.0, *rows[0].Rating, "non-null values untouched")
}

func TestImputeGameRowsCategorical(t *testing.T) {
	rows := []GameRow{
		{GameName: "A"},
		{GameName: "B", Developer: strPtr("Valve")},
	}
	ImputeGameRows(rows)

	require.NotNil(t, rows[0].Developer)
	assert.Equal(t, UnknownCategory, *rows[0].Developer)
	assert.Equal(t, "Valve", *rows[1].Developer)
	assert.Equal(t, UnknownCategory, *rows[1].Publisher)
}

func TestImputeGameRowsColumnsIndependent(t *testing.T) {
	rows := []GameRow{
		{GameName: "A", Price: floatPtr(10.0)},
		{GameName: "B", Playtime: floatPtr(100.0)},
	}
	ImputeGameRows(rows)

	assert.Equal(t, 10.0, *rows[1].Price, "price mean computed from price column only")
	assert.Equal(t, 100.0, *rows[0].Playtime, "playtime mean computed from playtime column only")
	assert.Nil(t, rows[0].Metacritic, "a fully null column stays null")
}
