package prompt

// Placeholder patterns recognized by the template filler. The
// double-adjective pattern must be checked before the single one
// because the latter is a substring of the former.
const (
	placeholderGerund        = "<gerund>"
	placeholderDoubleAdjNoun = "<adj> <adj> <noun>"
	placeholderAdjNoun       = "<adj> <noun>"
)

// Templates for the introductory sentence when no gerund is available.
var introTemplates = []string{
	"a <adj> <noun> as well as a <adj> <noun> decided to come together.",
	"a <adj> <adj> <noun> and a <adj> <adj> <noun> appeared all at once.",
}

// Templates for the introductory sentence when a gerund is available.
var introTemplatesWithGerunds = []string{
	"there was a <adj> <adj> <noun> <gerund> alongside a <adj> <noun>.",
	"a <adj> <noun> as well as a <gerund> <adj> <noun> were together.",
}

// Templates for the second sentence.
var secondTemplates = []string{
	"A <adj> <noun> was also present, quite an interesting scene.",
	"One must not forget the <adj> <noun>, which simply cannot be ignored.",
}

// Ending clauses for the list method.
var simpleEndings = []string{
	"were all really quite interesting.",
	"all came together in one place.",
	"were all together at once.",
}

// Body used when no keywords are given at all.
const emptyScene = "a hectic, unrecognizable scene took place."
