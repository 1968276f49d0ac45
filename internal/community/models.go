// Package community implements the daily plant-guessing challenge and
// user posts with comments, backed by a document store.
package community

import "time"

type ChallengeGuess struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Guess     string    `json:"guess"`
	Timestamp time.Time `json:"timestamp"`
	IsCorrect bool      `json:"is_correct"`
}

type DailyChallenge struct {
	ID               string           `json:"id"`
	ChallengeDate    time.Time        `json:"challenge_date"`
	ImageURL         string           `json:"image_url"`
	CorrectPlantName string           `json:"correct_plant_name"`
	Guesses          []ChallengeGuess `json:"guesses"`
}

// HasGuessed reports whether userID already submitted a guess.
func (c *DailyChallenge) HasGuessed(userID string) bool {
	for _, g := range c.Guesses {
		if g.UserID == userID {
			return true
		}
	}
	return false
}

// ChallengeView is the player-facing projection of a challenge. The
// correct answer stays hidden until the requesting user has guessed,
// right or wrong.
type ChallengeView struct {
	ID               string           `json:"id"`
	ChallengeDate    time.Time        `json:"challenge_date"`
	ImageURL         string           `json:"image_url"`
	CorrectPlantName string           `json:"correct_plant_name,omitempty"`
	HasGuessed       bool             `json:"has_guessed"`
	Guesses          []ChallengeGuess `json:"guesses"`
}

func (c *DailyChallenge) View(currentUserID string) ChallengeView {
	view := ChallengeView{
		ID:            c.ID,
		ChallengeDate: c.ChallengeDate,
		ImageURL:      c.ImageURL,
		Guesses:       c.Guesses,
	}
	if currentUserID != "" && c.HasGuessed(currentUserID) {
		view.HasGuessed = true
		view.CorrectPlantName = c.CorrectPlantName
	}
	return view
}

type PostComment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommunityPost struct {
	ID          string        `json:"id"`
	AuthorID    string        `json:"author_id"`
	AuthorName  string        `json:"author_name"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	CreatedAt   time.Time     `json:"created_at"`
	Comments    []PostComment `json:"comments"`
}
