package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"

	"studytrack/internal/ui/theme"
)

// FormatElapsed renders whole seconds as HH:MM:SS.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds/60)%60, seconds%60)
}

// GoalBar draws progress towards a minute goal.
type GoalBar struct {
	bar progress.Model
}

func NewGoalBar() GoalBar {
	return GoalBar{bar: progress.New(
		progress.WithGradient(string(theme.Sapphire), string(theme.Green)),
		progress.WithWidth(36),
	)}
}

func (g *GoalBar) SetWidth(width int) {
	if width > 8 {
		g.bar.Width = width
	}
}

// Ratio clamps minutes/goal to [0, 1].
func Ratio(minutes, goal int) float64 {
	if goal <= 0 || minutes <= 0 {
		return 0
	}
	if minutes >= goal {
		return 1
	}
	return float64(minutes) / float64(goal)
}

func (g GoalBar) View(minutes, goal int) string {
	return g.bar.ViewAs(Ratio(minutes, goal)) + theme.Muted.Render(fmt.Sprintf("  %d/%d min", minutes, goal))
}
