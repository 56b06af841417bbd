package naming

import "strings"

// Similarity scores how closely a search term names a candidate, 0 to 100.
// The first matching rung wins:
//
//	100 identical after normalization
//	 80 identical core names
//	 70 identical primary keywords of 4+ letters
//	 60 one name contains the other
//	 60 / 40 at least 80% / 50% of search words appear in the candidate
//
// Names that reduce to nothing only score through the core-name rung.
func Similarity(searchTerm, candidateName string) int {
	search := comparisonForm(searchTerm)
	candidate := comparisonForm(candidateName)
	if search != "" && search == candidate {
		return 100
	}

	searchCore := strings.ToLower(CoreName(searchTerm))
	candidateCore := strings.ToLower(CoreName(candidateName))
	if searchCore != "" && candidateCore != "" && searchCore == candidateCore {
		return 80
	}

	searchKeyword := PrimaryKeyword(searchTerm)
	if len(searchKeyword) >= 4 && searchKeyword == PrimaryKeyword(candidateName) {
		return 70
	}

	if search == "" || candidate == "" {
		return 0
	}
	if strings.Contains(candidate, search) || strings.Contains(search, candidate) {
		return 60
	}

	return tokenOverlap(search, candidate)
}

func tokenOverlap(search, candidate string) int {
	var searchWords []string
	for _, word := range strings.Fields(search) {
		if len(word) > 2 {
			searchWords = append(searchWords, word)
		}
	}
	if len(searchWords) == 0 {
		return 0
	}

	candidateWords := strings.Fields(candidate)
	matched := 0
	for _, word := range searchWords {
		for _, cw := range candidateWords {
			if strings.Contains(cw, word) || strings.Contains(word, cw) {
				matched++
				break
			}
		}
	}

	ratio := float64(matched) / float64(len(searchWords))
	switch {
	case ratio >= 0.8:
		return 60
	case ratio >= 0.5:
		return 40
	default:
		return 0
	}
}

// BestSimilarity returns the highest Similarity across the given candidate name fields.
func BestSimilarity(searchTerm string, names ...string) int {
	best := 0
	for _, name := range names {
		if score := Similarity(searchTerm, name); score > best {
			best = score
		}
	}
	return best
}
