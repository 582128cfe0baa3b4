package completion

import (
	"sort"
	"strings"

	"github.com/shaunwen/myprs/internal/models"
)

// MaxSuggestions caps the popup height so a wide prefix match never
// overwhelms the terminal.
const MaxSuggestions = 8

// Suggestion is one candidate completion for the command buffer.
type Suggestion struct {
	Value       string // Full buffer content after applying the suggestion
	Usage       string // Description column shown in the popup
	AppendSpace bool   // Leave a trailing space so argument typing continues
}

// Apply returns the buffer content the suggestion produces.
func (s Suggestion) Apply() string {
	if s.AppendSpace {
		return s.Value + " "
	}
	return s.Value
}

// Suggest computes the ordered candidate list for the current buffer.
// Ranking: command literals matching the typed prefix first, then
// context-aware argument completions (configured repos for /repo rm,
// status literals for /status), lexically within each tier. The result is
// capped at MaxSuggestions.
func Suggest(buffer string, repos []models.RepoRef) []Suggestion {
	trimmed := strings.TrimLeft(buffer, " ")
	if !strings.HasPrefix(trimmed, "/") {
		return nil
	}

	fields := strings.Fields(trimmed)
	endsWithSpace := strings.HasSuffix(trimmed, " ")

	// Still typing the command name itself.
	if len(fields) == 1 && !endsWithSpace {
		return capSuggestions(commandNameSuggestions(fields[0]))
	}

	name := fields[0]
	args := fields[1:]
	switch name {
	case "/repo":
		return capSuggestions(repoArgSuggestions(args, endsWithSpace, repos))
	case "/status":
		return capSuggestions(statusArgSuggestions(args, endsWithSpace))
	case "/search":
		return capSuggestions(searchArgSuggestions(args, endsWithSpace))
	default:
		return nil
	}
}

func commandNameSuggestions(prefix string) []Suggestion {
	var exact, rest []Suggestion
	for _, spec := range Specs() {
		if !strings.HasPrefix(spec.Name, prefix) {
			continue
		}
		s := Suggestion{Value: spec.Name, Usage: spec.Usage, AppendSpace: spec.AcceptsArgs}
		if spec.Name == prefix {
			exact = append(exact, s)
		} else {
			rest = append(rest, s)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Value < rest[j].Value })
	return append(exact, rest...)
}

func repoArgSuggestions(args []string, endsWithSpace bool, repos []models.RepoRef) []Suggestion {
	// "/repo " or a partial verb: offer the add/rm verbs.
	if len(args) == 0 || (len(args) == 1 && !endsWithSpace) {
		partial := ""
		if len(args) == 1 {
			partial = args[0]
		}
		var out []Suggestion
		for _, verb := range []string{"add", "rm"} {
			if strings.HasPrefix(verb, partial) {
				out = append(out, Suggestion{
					Value:       "/repo " + verb,
					Usage:       "/repo " + verb + " <workspace>/<repo>",
					AppendSpace: true,
				})
			}
		}
		// A partial that matches no verb may be a configured repo for the
		// bare add form.
		if len(out) == 0 && partial != "" {
			return configuredRepoSuggestions("/repo", partial, repos)
		}
		return out
	}

	// Removing: complete from configured repos only, never arbitrary text.
	if args[0] == "rm" || args[0] == "remove" {
		partial := ""
		if len(args) == 2 && !endsWithSpace {
			partial = args[1]
		}
		if len(args) <= 2 {
			return configuredRepoSuggestions("/repo "+args[0], partial, repos)
		}
	}
	return nil
}

func configuredRepoSuggestions(lead, partial string, repos []models.RepoRef) []Suggestion {
	var out []Suggestion
	for _, ref := range repos {
		value := ref.String()
		if strings.HasPrefix(value, partial) {
			out = append(out, Suggestion{Value: lead + " " + value, Usage: "configured repository"})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func statusArgSuggestions(args []string, endsWithSpace bool) []Suggestion {
	partial := ""
	if len(args) == 1 && !endsWithSpace {
		partial = args[0]
	} else if len(args) > 1 || (len(args) == 1 && endsWithSpace) {
		return nil
	}
	var out []Suggestion
	for _, literal := range models.StatusLiterals() {
		if strings.HasPrefix(literal, partial) {
			out = append(out, Suggestion{Value: "/status " + literal, Usage: "show " + literal + " pull requests"})
		}
	}
	return out
}

func searchArgSuggestions(args []string, endsWithSpace bool) []Suggestion {
	partial := ""
	switch {
	case len(args) == 0:
	case len(args) == 1 && !endsWithSpace:
		partial = args[0]
	default:
		return nil
	}
	if strings.HasPrefix("clear", partial) {
		return []Suggestion{{Value: "/search clear", Usage: "reset the active search"}}
	}
	return nil
}

func capSuggestions(suggestions []Suggestion) []Suggestion {
	if len(suggestions) > MaxSuggestions {
		return suggestions[:MaxSuggestions]
	}
	return suggestions
}
