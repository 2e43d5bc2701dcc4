package annotate

// shallowRelations assigns a dependency-relation label per token from
// deterministic POS patterns over the tag sequence. This is a shallow
// approximation built from adjacency rules, not a parse: determiners and
// adjectives attach forward to nominals, adverbs to verbs, prepositions
// case-mark the following nominal, the first pre-verbal nominal is the
// subject, the first post-verbal nominal the object, and the first finite
// verb is the root.
func shallowRelations(tags []string) []string {
	relations := make([]string, len(tags))

	rootIdx := -1
	for i, tag := range tags {
		if isVerbTag(tag) || tag == "MD" {
			rootIdx = i
			break
		}
	}

	for i, tag := range tags {
		switch {
		case tag == "DT" || tag == "PDT" || tag == "WDT":
			if nextNominal(tags, i) >= 0 {
				relations[i] = "det"
			}
		case isAdjectiveTag(tag):
			if nextNominal(tags, i) >= 0 {
				relations[i] = "amod"
			}
		case isAdverbTag(tag):
			relations[i] = "advmod"
		case tag == "MD":
			if i != rootIdx || hasLaterVerb(tags, i) {
				relations[i] = "aux"
			}
		case tag == "IN" || tag == "TO":
			if nextNominal(tags, i) >= 0 {
				relations[i] = "case"
			}
		case tag == "CC":
			relations[i] = "cc"
		case isNominalTag(tag):
			if rootIdx >= 0 && i < rootIdx {
				relations[i] = "nsubj"
			} else if rootIdx >= 0 && i > rootIdx {
				relations[i] = "obj"
			}
		case isVerbTag(tag):
			if i == rootIdx || (rootIdx >= 0 && tags[rootIdx] == "MD" && firstVerbAfter(tags, rootIdx) == i) {
				relations[i] = "root"
			} else if rootIdx >= 0 && i > rootIdx {
				relations[i] = "aux"
			}
		}
	}

	// Only one nsubj and one obj per sentence; clear the rest.
	seenSubj, seenObj := false, false
	for i, rel := range relations {
		if rel == "nsubj" {
			if seenSubj {
				relations[i] = ""
			}
			seenSubj = true
		}
		if rel == "obj" {
			if seenObj {
				relations[i] = ""
			}
			seenObj = true
		}
	}

	// A modal followed by a verb makes the verb the root, the modal aux.
	if rootIdx >= 0 && tags[rootIdx] == "MD" {
		if v := firstVerbAfter(tags, rootIdx); v >= 0 {
			relations[rootIdx] = "aux"
			relations[v] = "root"
		} else {
			relations[rootIdx] = "root"
		}
	}
	return relations
}

// nextNominal finds the next nominal within a short attachment window.
func nextNominal(tags []string, from int) int {
	for i := from + 1; i < len(tags) && i <= from+3; i++ {
		if isNominalTag(tags[i]) {
			return i
		}
	}
	return -1
}

func hasLaterVerb(tags []string, from int) bool {
	return firstVerbAfter(tags, from) >= 0
}

func firstVerbAfter(tags []string, from int) int {
	for i := from + 1; i < len(tags); i++ {
		if isVerbTag(tags[i]) {
			return i
		}
	}
	return -1
}
