package annotate

// pennToUniversal maps Penn Treebank tags to universal POS categories.
var pennToUniversal = map[string]string{
	"CC": "cconj", "CD": "num", "DT": "det", "EX": "pron", "FW": "x",
	"IN": "adp", "JJ": "adj", "JJR": "adj", "JJS": "adj",
	"LS": "x", "MD": "aux", "NN": "noun", "NNS": "noun",
	"NNP": "propn", "NNPS": "propn", "PDT": "det", "POS": "part",
	"PRP": "pron", "PRP$": "pron", "RB": "adv", "RBR": "adv", "RBS": "adv",
	"RP": "part", "SYM": "sym", "TO": "part", "UH": "intj",
	"VB": "verb", "VBD": "verb", "VBG": "verb", "VBN": "verb",
	"VBP": "verb", "VBZ": "verb", "WDT": "det", "WP": "pron",
	"WP$": "pron", "WRB": "adv",
	"(": "punct", ")": "punct", ",": "punct", ".": "punct",
	":": "punct", "``": "punct", "''": "punct", "$": "sym", "#": "sym",
}

// UniversalTag maps a Penn tag to its universal category, defaulting to "x".
func UniversalTag(pennTag string) string {
	if u, ok := pennToUniversal[pennTag]; ok {
		return u
	}
	return "x"
}

// morphFeatures derives morphological feature values from a Penn tag.
// The feature inventory is fixed (tense, number, degree, person, verbform,
// prontype) so the corpus pivot stays stable.
func morphFeatures(pennTag string) map[string]string {
	switch pennTag {
	case "VBD":
		return map[string]string{"tense": "past", "verbform": "fin"}
	case "VBN":
		return map[string]string{"tense": "past", "verbform": "part"}
	case "VBG":
		return map[string]string{"tense": "pres", "verbform": "part"}
	case "VBZ":
		return map[string]string{"tense": "pres", "verbform": "fin", "person": "3", "number": "sing"}
	case "VBP":
		return map[string]string{"tense": "pres", "verbform": "fin"}
	case "VB":
		return map[string]string{"verbform": "inf"}
	case "MD":
		return map[string]string{"verbform": "fin"}
	case "NN", "NNP":
		return map[string]string{"number": "sing"}
	case "NNS", "NNPS":
		return map[string]string{"number": "plur"}
	case "JJ", "RB":
		return map[string]string{"degree": "pos"}
	case "JJR", "RBR":
		return map[string]string{"degree": "cmp"}
	case "JJS", "RBS":
		return map[string]string{"degree": "sup"}
	case "PRP", "PRP$":
		return map[string]string{"prontype": "prs"}
	case "WP", "WP$", "WDT", "WRB":
		return map[string]string{"prontype": "int"}
	case "DT", "PDT":
		return map[string]string{"prontype": "art"}
	default:
		return nil
	}
}

func isVerbTag(tag string) bool {
	switch tag {
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		return true
	}
	return false
}

func isNominalTag(tag string) bool {
	switch tag {
	case "NN", "NNS", "NNP", "NNPS", "PRP", "WP":
		return true
	}
	return false
}

func isAdjectiveTag(tag string) bool {
	return tag == "JJ" || tag == "JJR" || tag == "JJS"
}

func isAdverbTag(tag string) bool {
	return tag == "RB" || tag == "RBR" || tag == "RBS"
}
