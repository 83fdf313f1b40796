package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// knownOffense pairs a handbook offense name with its disciplinary category.
type knownOffense struct {
	Name     string
	Category string
}

// knownOffenses is the student-handbook offense table, in handbook order.
// It backs the secondary classification path: when the taxonomy scan comes
// up empty, a plain substring scan over this table can still assign a
// category. Order matters; the first name found in the text wins.
var knownOffenses = []knownOffense{
	// Category A
	{"repeated minor offense", "A"},
	{"tampered or borrowed id", "A"},
	{"smoking inside campus", "A"},
	{"intoxication or liquor", "A"},
	{"unauthorized entry", "A"},
	{"cheating", "A"},

	// Category B
	{"vandalism", "B"},
	{"disrespectful online post", "B"},
	{"privacy violation", "B"},
	{"ill repute places", "B"},
	{"false testimony", "B"},
	{"grave insult", "B"},

	// Category C
	{"hacking", "C"},
	{"forgery", "C"},
	{"theft", "C"},
	{"unauthorized material use", "C"},
	{"embezzlement", "C"},
	{"illegal assembly", "C"},
	{"immorality", "C"},
	{"bullying", "C"},
	{"brawling", "C"},
	{"physical assault", "C"},
	{"drug use", "C"},
	{"false alarm", "C"},
	{"fire equipment misuse", "C"},

	// Category D
	{"drug possession", "D"},
	{"repeat drug use", "D"},
	{"possession of firearm", "D"},
	{"illegal fraternity", "D"},
	{"hazing", "D"},
	{"crime involving morality", "D"},
	{"sexual harassment", "D"},
	{"subversion or sedition", "D"},
}

var offenseTitler = cases.Title(language.English)

// ScanKnownOffense finds the first handbook offense named in text and
// returns its title-cased name and category.
func ScanKnownOffense(text string) (name, category string, ok bool) {
	lower := strings.ToLower(text)
	for _, o := range knownOffenses {
		if strings.Contains(lower, o.Name) {
			return offenseTitler.String(o.Name), o.Category, true
		}
	}
	return "", "", false
}

// LookupCategory maps a handbook offense name to its category.
func LookupCategory(offense string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(offense))
	for _, o := range knownOffenses {
		if o.Name == lower {
			return o.Category, true
		}
	}
	return "", false
}
