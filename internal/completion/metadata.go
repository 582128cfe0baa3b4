// Package completion produces ordered command suggestions for the command
// buffer.
package completion

// CommandSpec contains metadata about a slash command for suggestion
// generation. This is the single source of truth for the command surface
// shown in the popup.
type CommandSpec struct {
	Name        string // Command literal including the leading slash
	Usage       string // Human-readable description
	AcceptsArgs bool   // true when arguments follow the command name
}

// Specs returns metadata for all myprs slash commands.
func Specs() []CommandSpec {
	return []CommandSpec{
		{
			Name:  "/help",
			Usage: "show available commands",
		},
		{
			Name:        "/repo",
			Usage:       "add/rm repository entries",
			AcceptsArgs: true,
		},
		{
			Name:  "/repos",
			Usage: "list configured repositories",
		},
		{
			Name:        "/status",
			Usage:       "set status filter",
			AcceptsArgs: true,
		},
		{
			Name:  "/refresh",
			Usage: "reload pull requests",
		},
		{
			Name:        "/search",
			Usage:       "filter PRs by number or text",
			AcceptsArgs: true,
		},
		{
			Name:  "/quit",
			Usage: "exit the app",
		},
	}
}
