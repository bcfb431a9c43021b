package geo

import (
	"strings"

	"leadmarket/internal/domain/matching"
)

// Approximate centre points for common UK postcode areas. Used when the
// postcode API is unreachable or does not know the code; a rough area-level
// coordinate is good enough for radius matching.
var areaCentres = map[string]matching.Coordinates{
	"LS": {Lat: 53.7997, Lng: -1.5492}, // Leeds
	"BD": {Lat: 53.7960, Lng: -1.7594}, // Bradford
	"M":  {Lat: 53.4808, Lng: -2.2426}, // Manchester
	"B":  {Lat: 52.4862, Lng: -1.8904}, // Birmingham
	"L":  {Lat: 53.4084, Lng: -2.9916}, // Liverpool
	"S":  {Lat: 53.3811, Lng: -1.4701}, // Sheffield
	"NE": {Lat: 54.9783, Lng: -1.6178}, // Newcastle
	"N":  {Lat: 51.5654, Lng: -0.1052}, // North London
	"E":  {Lat: 51.5270, Lng: -0.0551}, // East London
	"SW": {Lat: 51.4892, Lng: -0.1337}, // South West London
	"SE": {Lat: 51.4863, Lng: -0.0807}, // South East London
	"NW": {Lat: 51.5441, Lng: -0.1870}, // North West London
	"W":  {Lat: 51.5130, Lng: -0.2089}, // West London
	"EC": {Lat: 51.5180, Lng: -0.0931}, // City of London
	"WC": {Lat: 51.5166, Lng: -0.1230}, // Central London
	"G":  {Lat: 55.8642, Lng: -4.2518}, // Glasgow
	"EH": {Lat: 55.9533, Lng: -3.1883}, // Edinburgh
	"CF": {Lat: 51.4816, Lng: -3.1791}, // Cardiff
	"BS": {Lat: 51.4545, Lng: -2.5879}, // Bristol
	"NG": {Lat: 52.9548, Lng: -1.1581}, // Nottingham
	"LE": {Lat: 52.6369, Lng: -1.1398}, // Leicester
	"CV": {Lat: 52.4068, Lng: -1.5197}, // Coventry
	"YO": {Lat: 53.9600, Lng: -1.0873}, // York
	"HU": {Lat: 53.7676, Lng: -0.3274}, // Hull
	"SO": {Lat: 50.9097, Lng: -1.4044}, // Southampton
	"PL": {Lat: 50.3755, Lng: -4.1427}, // Plymouth
	"BT": {Lat: 54.5973, Lng: -5.9301}, // Belfast
}

// areaCentre matches the leading letters of the outward code, longest prefix
// first ("SW1A 1AA" hits SW before W).
func areaCentre(postcode string) (matching.Coordinates, bool) {
	letters := outwardLetters(postcode)
	for l := len(letters); l > 0; l-- {
		if c, ok := areaCentres[letters[:l]]; ok {
			return c, true
		}
	}
	return matching.Coordinates{}, false
}

func outwardLetters(postcode string) string {
	s := strings.ToUpper(strings.TrimSpace(postcode))
	end := 0
	for end < len(s) && s[end] >= 'A' && s[end] <= 'Z' {
		end++
	}
	if end > 2 {
		end = 2
	}
	return s[:end]
}
