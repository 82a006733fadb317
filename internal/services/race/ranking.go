package race

import (
	"sort"

	"github.com/fastfingers/typerace/internal/model"
)

// rankPlayers orders players by WPM descending, ties broken by
// accuracy descending, remaining ties by join order. The input slice
// is already in join order, so a stable sort gives the final
// tie-break for free. Callers must hold the room lock.
func rankPlayers(players []*model.Player) []*model.Player {
	ranked := make([]*model.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WPM != ranked[j].WPM {
			return ranked[i].WPM > ranked[j].WPM
		}
		return ranked[i].Accuracy > ranked[j].Accuracy
	})
	return ranked
}

// standings builds the live ranking view pushed on every progress
// update
func standings(players []*model.Player) []model.PlayerStanding {
	ranked := rankPlayers(players)
	out := make([]model.PlayerStanding, len(ranked))
	for i, p := range ranked {
		out[i] = model.PlayerStanding{
			Rank:     i + 1,
			PlayerID: p.ID,
			Username: p.Username,
			Progress: p.Progress,
			WPM:      p.WPM,
			Accuracy: p.Accuracy,
			Errors:   p.Errors,
			Finished: p.Finished,
		}
	}
	return out
}

// finalResults builds the placements broadcast when a race ends
func finalResults(players []*model.Player) []model.PlayerResult {
	ranked := rankPlayers(players)
	out := make([]model.PlayerResult, len(ranked))
	for i, p := range ranked {
		out[i] = model.PlayerResult{
			Rank:       i + 1,
			PlayerID:   p.ID,
			Username:   p.Username,
			WPM:        p.WPM,
			Accuracy:   p.Accuracy,
			Errors:     p.Errors,
			TotalChars: p.TypedLength,
		}
	}
	return out
}
