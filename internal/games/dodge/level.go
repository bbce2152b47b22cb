package dodge

import "github.com/vovakirdan/dodgeball/internal/core"

// Level is a score-derived difficulty tier.
type Level struct {
	MinScore int        // Score at which the level starts
	Color    core.Color // Obstacle color
	Active   int        // Number of pool slots in play
}

// levels is ordered by MinScore. Index 0 is the starting tier.
var levels = [...]Level{
	{MinScore: 0, Color: core.ColorGreen, Active: 15},
	{MinScore: 25, Color: core.ColorYellow, Active: 20},
	{MinScore: 35, Color: core.ColorRed, Active: 25},
	{MinScore: 45, Color: core.ColorGray, Active: PoolCapacity},
}

// MaxLevel is the index of the last tier.
const MaxLevel = len(levels) - 1

// LevelAt returns the tier for a level index, clamped to the table.
func LevelAt(index int) Level {
	return levels[core.Clamp(index, 0, MaxLevel)]
}

// crossedLevels returns, in ascending order, the indices above watermark
// whose threshold score has reached.
func crossedLevels(score, watermark int) []int {
	var crossed []int
	for i := watermark + 1; i <= MaxLevel; i++ {
		if score >= levels[i].MinScore {
			crossed = append(crossed, i)
		}
	}
	return crossed
}
