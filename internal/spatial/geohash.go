package spatial

import (
	geohash "github.com/TomiHiltunen/geohash-golang"
)

const (
	MinGeohashPrecision = 1
	MaxGeohashPrecision = 12
)

// EncodeGeohash encodes latitude and longitude into a geohash string.
// precision is clamped to 1-12 characters.
func EncodeGeohash(lat, lon float64, precision int) string {
	return geohash.EncodeWithPrecision(lat, lon, clampPrecision(precision))
}

// DecodeGeohash returns the center point of a geohash cell
func DecodeGeohash(cell string) (lat, lon float64) {
	center := geohash.Decode(cell).Center()
	return center.Lat(), center.Lng()
}

func clampPrecision(p int) int {
	if p < MinGeohashPrecision {
		return MinGeohashPrecision
	}
	if p > MaxGeohashPrecision {
		return MaxGeohashPrecision
	}
	return p
}
