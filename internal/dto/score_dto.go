package dto

// ScoreAggregate is the per-type total and event count for one user.
type ScoreAggregate struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

// UserScores is keyed by score type name and zero-filled for every known
// type, even for users without any events.
type UserScores map[string]ScoreAggregate

// ReviewResult is returned after a review action.
type ReviewResult struct {
	UUID       string     `json:"uuid"`
	Value      int        `json:"value"`
	VideoScore int        `json:"video_score"`
	UserScores UserScores `json:"user_scores"`
}

// ScoreLegendEntry documents one score source for the client UI.
type ScoreLegendEntry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Total    int    `json:"total"`
	Position int    `json:"position"`
}

type ProfileResponse struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Scores   UserScores `json:"scores"`
}
