package models

// LegalCategories is the fixed set of practice areas a question can be
// filed under. The feed filter and the ask form share this list.
var LegalCategories = []string{
	"Criminal Law",
	"Civil Law",
	"Family Law",
	"Corporate Law",
	"Employment Law",
	"Real Estate Law",
	"Immigration Law",
	"Tax Law",
	"Intellectual Property",
	"Contract Law",
	"Personal Injury",
	"Estate Planning",
	"Constitutional Law",
	"Environmental Law",
	"Healthcare Law",
	"Other",
}

// ValidCategory reports whether category is one of the fixed practice areas.
func ValidCategory(category string) bool {
	for _, c := range LegalCategories {
		if c == category {
			return true
		}
	}
	return false
}
