// Package data holds the static jurisdiction knowledge used by the
// classifier: an ordered table mapping URL fragments to US state codes.
package data

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StateFragment pairs a URL fragment with the state code it indicates.
type StateFragment struct {
	Fragment string
	Code     string
}

// stateFragments is scanned in order, first match wins. Ordering is part
// of the table's semantics:
//   - DC comes first: its name fragments ("district", "columbia",
//     "washington") are substrings shared with WA and SC cities, and DC
//     agency URLs are the most common lookup in practice.
//   - "west-virginia"/"westvirginia" precede "virginia".
//   - "arkansas" precedes "kansas" ("kansas" is a substring of it).
//
// Domain fragments use the ".xx.gov" convention; many states also run
// name-based domains (texas.gov, colorado.gov), which the name fragments
// cover. The table is a heuristic: it may return no match or a wrong
// guess, and consumers treat the result as advisory.
var stateFragments = []StateFragment{
	// District of Columbia
	{".dc.gov", "DC"},
	{"district-of-columbia", "DC"},
	{"districtofcolumbia", "DC"},
	{"district", "DC"},
	{"columbia", "DC"},
	{"washingtondc", "DC"},

	{".al.gov", "AL"},
	{"alabama", "AL"},
	{".ak.gov", "AK"},
	{"alaska", "AK"},
	{".az.gov", "AZ"},
	{"arizona", "AZ"},
	{".ar.gov", "AR"},
	{"arkansas", "AR"},
	{".ca.gov", "CA"},
	{"california", "CA"},
	{".co.gov", "CO"},
	{"colorado", "CO"},
	{".ct.gov", "CT"},
	{"connecticut", "CT"},
	{".de.gov", "DE"},
	{"delaware", "DE"},
	{".fl.gov", "FL"},
	{"florida", "FL"},
	{".ga.gov", "GA"},
	{"georgia", "GA"},
	{".hi.gov", "HI"},
	{"hawaii", "HI"},
	{".id.gov", "ID"},
	{"idaho", "ID"},
	{".il.gov", "IL"},
	{"illinois", "IL"},
	{".in.gov", "IN"},
	{"indiana", "IN"},
	{".ia.gov", "IA"},
	{"iowa", "IA"},
	{".ks.gov", "KS"},
	{"kansas", "KS"},
	{".ky.gov", "KY"},
	{"kentucky", "KY"},
	{".la.gov", "LA"},
	{"louisiana", "LA"},
	{".me.gov", "ME"},
	{"maine", "ME"},
	{".md.gov", "MD"},
	{"maryland", "MD"},
	{".ma.gov", "MA"},
	{"massachusetts", "MA"},
	{".mi.gov", "MI"},
	{"michigan", "MI"},
	{".mn.gov", "MN"},
	{"minnesota", "MN"},
	{".ms.gov", "MS"},
	{"mississippi", "MS"},
	{".mo.gov", "MO"},
	{"missouri", "MO"},
	{".mt.gov", "MT"},
	{"montana", "MT"},
	{".ne.gov", "NE"},
	{"nebraska", "NE"},
	{".nv.gov", "NV"},
	{"nevada", "NV"},
	{".nh.gov", "NH"},
	{"new-hampshire", "NH"},
	{"newhampshire", "NH"},
	{".nj.gov", "NJ"},
	{"new-jersey", "NJ"},
	{"newjersey", "NJ"},
	{".nm.gov", "NM"},
	{"new-mexico", "NM"},
	{"newmexico", "NM"},
	{".ny.gov", "NY"},
	{"new-york", "NY"},
	{"newyork", "NY"},
	{".nc.gov", "NC"},
	{"north-carolina", "NC"},
	{"northcarolina", "NC"},
	{".nd.gov", "ND"},
	{"north-dakota", "ND"},
	{"northdakota", "ND"},
	{".oh.gov", "OH"},
	{"ohio", "OH"},
	{".ok.gov", "OK"},
	{"oklahoma", "OK"},
	{".or.gov", "OR"},
	{"oregon", "OR"},
	{".pa.gov", "PA"},
	{"pennsylvania", "PA"},
	{".ri.gov", "RI"},
	{"rhode-island", "RI"},
	{"rhodeisland", "RI"},
	{".sc.gov", "SC"},
	{"south-carolina", "SC"},
	{"southcarolina", "SC"},
	{".sd.gov", "SD"},
	{"south-dakota", "SD"},
	{"southdakota", "SD"},
	{".tn.gov", "TN"},
	{"tennessee", "TN"},
	{".tx.gov", "TX"},
	{"texas", "TX"},
	{".ut.gov", "UT"},
	{"utah", "UT"},
	{".vt.gov", "VT"},
	{"vermont", "VT"},
	// WV before VA: "virginia" is a substring of the WV name fragments.
	{".wv.gov", "WV"},
	{"west-virginia", "WV"},
	{"westvirginia", "WV"},
	{".va.gov", "VA"},
	{"virginia", "VA"},
	{".wa.gov", "WA"},
	{"washington", "WA"},
	{".wi.gov", "WI"},
	{"wisconsin", "WI"},
	{".wy.gov", "WY"},
	{"wyoming", "WY"},
}

// ResolveState scans the ordered fragment table against a URL and returns
// the first matching state code. The URL is normalized (lowercased,
// diacritics stripped) before scanning. Returns false when nothing
// matches.
func ResolveState(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	normalized := NormalizeFragment(url)
	for _, sf := range stateFragments {
		if strings.Contains(normalized, sf.Fragment) {
			return sf.Code, true
		}
	}
	return "", false
}

// NormalizeFragment prepares a URL or fragment for table scanning.
func NormalizeFragment(s string) string {
	return removeAccents(strings.ToLower(strings.TrimSpace(s)))
}

// removeAccents strips diacritical marks from a string.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
