package render

// ANSI escape sequences used for highlighting
const (
	reset    = "\033[0m"
	red      = "\033[31m"
	green    = "\033[32m"
	boldCyan = "\033[1;36m"
	darkGray = "\033[90m"
)

func (r *Renderer) paint(color, text string) string {
	if !r.color || text == "" {
		return text
	}
	return color + text + reset
}
