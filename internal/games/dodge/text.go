package dodge

import "fmt"

// Fixed overlay strings.
const (
	InstructionText = "Move the ball with the arrow keys or WASD"
	CountdownTitle  = "GET READY!"
	GameOverTitle   = "Game Over!"
	RestartHint     = "Press SPACE to play again"
)

// ScoreText formats the HUD score.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// HitsText formats the HUD hit counter.
func HitsText(hits int) string {
	return fmt.Sprintf("Hits: %d/%d", hits, MaxHits)
}

// HighscoreText formats the session highscore.
func HighscoreText(highscore int) string {
	return fmt.Sprintf("Highscore: %d", highscore)
}

// LevelText formats the current level, 1-indexed for display.
func LevelText(level int) string {
	return fmt.Sprintf("Level %d", level+1)
}

// CountdownText formats the countdown number.
func CountdownText(value int) string {
	return fmt.Sprintf("%d", value)
}

// FinalScoreText formats the score shown on the game over screen.
func FinalScoreText(score int) string {
	return fmt.Sprintf("Your Score: %d", score)
}
