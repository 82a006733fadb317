package redis

// Key layout:
//
//	typerace:leaderboard          sorted set, score = wpm, member = result id
//	typerace:result:<id>          JSON-encoded GameResult

const (
	keyPrefix      = "typerace:"
	leaderboardKey = keyPrefix + "leaderboard"
)

func resultKey(id string) string {
	return keyPrefix + "result:" + id
}
