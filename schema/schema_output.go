package schema

// EnrichedScoreEntry adds presentation data to a ScoreEntry.
type EnrichedScoreEntry struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ScoreEntry
}

// EnrichEntries adds rank and label to a list of score entries.
func EnrichEntries(entries []ScoreEntry, bands ScoreBands) []EnrichedScoreEntry {
	output := make([]EnrichedScoreEntry, len(entries))
	for i, e := range entries {
		output[i] = EnrichedScoreEntry{
			Rank:       i + 1,
			Label:      bands.Label(e.Score),
			ScoreEntry: e,
		}
	}
	return output
}

// LanguageInfo describes a registered language plugin.
type LanguageInfo struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Mode       AnalysisMode `json:"mode"`
	Extensions []string     `json:"extensions"`
	Tool       string       `json:"tool"`
	Available  bool         `json:"available"` // Tool binary found on PATH
}
