package model

import "fmt"

// Convention names a prayer-time calculation method. The set is closed;
// each member maps to the numeric code expected by the computation service.
type Convention string

const (
	ISNA      Convention = "ISNA"
	MWL       Convention = "MWL"
	Egyptian  Convention = "Egyptian"
	Karachi   Convention = "Karachi"
	UmmAlQura Convention = "Umm al-Qura"
	Tehran    Convention = "Tehran"
	France    Convention = "France"
	Turkey    Convention = "Turkey"
)

// DefaultConvention is used until the user picks another one.
const DefaultConvention = ISNA

var methodCodes = map[Convention]int{
	ISNA:      2,
	MWL:       3,
	Egyptian:  5,
	Karachi:   1,
	UmmAlQura: 4,
	Tehran:    7,
	France:    12,
	Turkey:    13,
}

// Conventions lists the supported methods in a stable order.
var Conventions = []Convention{
	ISNA, MWL, Egyptian, Karachi, UmmAlQura, Tehran, France, Turkey,
}

// MethodCode returns the numeric code sent to the computation service.
func (c Convention) MethodCode() int {
	return methodCodes[c]
}

// Valid reports whether c is a member of the closed set.
func (c Convention) Valid() bool {
	_, ok := methodCodes[c]
	return ok
}

// ParseConvention resolves a name to a Convention.
func ParseConvention(name string) (Convention, error) {
	c := Convention(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown calculation convention %q", name)
	}
	return c, nil
}

// ConventionForCode resolves a stored numeric code back to its Convention.
// Unknown codes fall back to the default.
func ConventionForCode(code int) Convention {
	for c, n := range methodCodes {
		if n == code {
			return c
		}
	}
	return DefaultConvention
}
