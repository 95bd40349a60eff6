package core

import (
	"sort"

	"github.com/huangsam/codequal/schema"
)

// RankEntries sorts entries by score in descending order, in place.
// Equal scores keep their accumulation order.
func RankEntries(entries []schema.ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
