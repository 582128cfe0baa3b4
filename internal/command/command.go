// Package command parses typed command lines into a closed command set.
package command

import (
	"fmt"
	"strings"

	"github.com/shaunwen/myprs/internal/models"
)

// Kind identifies which command was typed. The set is closed so dispatch
// sites can switch exhaustively instead of matching on strings.
type Kind int

// Command kinds.
const (
	KindHelp Kind = iota
	KindRepoAdd
	KindRepoRemove
	KindRepoList
	KindSetStatus
	KindRefresh
	KindSearch
	KindSearchClear
	KindQuit
)

// Command is the parsed form of a typed command line. Repo is set for
// RepoAdd/RepoRemove, Status for SetStatus and Term for Search.
type Command struct {
	Kind   Kind
	Repo   models.RepoRef
	Status models.Status
	Term   string
}

// Usage strings reported on malformed arguments.
const (
	usageRepo   = "usage: /repo add <workspace>/<repo> | /repo rm <workspace>/<repo>"
	usageStatus = "usage: /status <open|merged|declined|all>"
	usageSearch = "usage: /search <text|pr-number> | /search clear"
)

// Parse turns a raw command line into a Command. It is a pure
// transformation: no session state is consulted or modified.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{}, fmt.Errorf("commands must start with '/', try /help")
	}

	fields := strings.Fields(trimmed)
	name := fields[0]
	args := fields[1:]

	switch name {
	case "/help":
		return Command{Kind: KindHelp}, nil
	case "/quit":
		return Command{Kind: KindQuit}, nil
	case "/refresh":
		return Command{Kind: KindRefresh}, nil
	case "/repos":
		return Command{Kind: KindRepoList}, nil
	case "/repo":
		return parseRepo(args)
	case "/status":
		return parseStatus(args)
	case "/search":
		return parseSearch(trimmed, args)
	default:
		return Command{}, fmt.Errorf("unknown command %s, try /help", name)
	}
}

func parseRepo(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, fmt.Errorf("%s", usageRepo)
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%s", usageRepo)
		}
		ref, err := models.ParseRepoRef(args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindRepoAdd, Repo: ref}, nil
	case "rm", "remove":
		if len(args) != 2 {
			return Command{}, fmt.Errorf("%s", usageRepo)
		}
		ref, err := models.ParseRepoRef(args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindRepoRemove, Repo: ref}, nil
	default:
		// Bare "/repo w/r" is shorthand for add.
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%s", usageRepo)
		}
		ref, err := models.ParseRepoRef(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindRepoAdd, Repo: ref}, nil
	}
}

func parseStatus(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("%s", usageStatus)
	}
	status, err := models.ParseStatus(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindSetStatus, Status: status}, nil
}

func parseSearch(line string, args []string) (Command, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		return Command{Kind: KindSearchClear}, nil
	}
	// Everything after "/search " is the term, whitespace preserved inside.
	term := strings.TrimSpace(strings.TrimPrefix(line, "/search"))
	if term == "" {
		// An empty term must not become a match-everything search.
		return Command{}, fmt.Errorf("%s", usageSearch)
	}
	return Command{Kind: KindSearch, Term: term}, nil
}
