package domain

// Sentinel tokens observed in the CFEM-CRM source files. All comparisons
// are exact matches against these literals; matching is deliberately not
// broadened to case-insensitive because the source system's intent is
// unconfirmed.
const (
	// MissingToken marks a missing value exported by the source spreadsheet.
	MissingToken = "#N/D"
	// MissingTokenAlt is the untranslated variant of the same marker.
	MissingTokenAlt = "#N/A"

	// ScopeNotMapped is the scope-code literal meaning the mine has no
	// commercial contract. The match is case-sensitive.
	ScopeNotMapped = "NÃO"

	// GroupNone marks a mine with no controlling group.
	GroupNone = "NA"
	// GroupOutside marks a mine whose group is outside commercial scope.
	GroupOutside = "FORA"

	// OutsourcesYes and OutsourcesNo are the two values of the
	// terceiriza-lavra flag.
	OutsourcesYes = "Sim"
	OutsourcesNo  = "Não"
)

// groupSentinels enumerates the exact group spellings treated as
// none/outside, including the case variants present in real uploads.
var groupSentinels = map[string]struct{}{
	GroupNone:    {},
	GroupOutside: {},
	"na":         {},
	"fora":       {},
	"Na":         {},
	"Fora":       {},
	"":           {},
}

// IsGroupSentinel reports whether a controlling-group value means
// "none" or "outside scope". Such records are excluded from the group
// filter's selectable universe and from group aggregations.
func IsGroupSentinel(group string) bool {
	_, ok := groupSentinels[group]
	return ok
}

// IsMissingToken reports whether a raw field value is one of the
// source's missing-value markers.
func IsMissingToken(s string) bool {
	return s == "" || s == MissingToken || s == MissingTokenAlt
}
