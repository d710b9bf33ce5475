// Package conversation turns typed player input into commands and
// delivers notifications back to the player.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/vintagevendor/internal/domain"
	"github.com/hammamikhairi/vintagevendor/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches the first word of the input against keyword
// patterns. The remaining words become the command arguments.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(start|play|open|go)$`), domain.CmdStart},
		{regexp.MustCompile(`(?i)^(spawn|next|customer)$`), domain.CmdSpawn},
		{regexp.MustCompile(`(?i)^(accept|take|a)$`), domain.CmdAccept},
		{regexp.MustCompile(`(?i)^(serve|give|s)$`), domain.CmdServe},
		{regexp.MustCompile(`(?i)^(hint|tip)$`), domain.CmdHint},
		{regexp.MustCompile(`(?i)^(pause|brb|p)$`), domain.CmdPause},
		{regexp.MustCompile(`(?i)^(resume|back|unpause)$`), domain.CmdResume},
		{regexp.MustCompile(`(?i)^(end|close|finish)$`), domain.CmdEnd},
		{regexp.MustCompile(`(?i)^(status|info)$`), domain.CmdStatus},
		{regexp.MustCompile(`(?i)^(board|leaderboard|scores|top)$`), domain.CmdLeaderboard},
		{regexp.MustCompile(`(?i)^stats$`), domain.CmdStats},
		{regexp.MustCompile(`(?i)^(journal|diary)$`), domain.CmdJournal},
		{regexp.MustCompile(`(?i)^(recipes|menu|list)$`), domain.CmdRecipes},
		{regexp.MustCompile(`(?i)^(reward|ad)$`), domain.CmdReward},
		{regexp.MustCompile(`(?i)^(difficulty|level|mode)$`), domain.CmdDifficulty},
		{regexp.MustCompile(`(?i)^reset$`), domain.CmdReset},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.CmdQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.CmdHelp},
	}
	return p
}

// Parse converts one input line into a command. Unrecognized input comes
// back as CmdUnknown carrying the trimmed line as its only argument.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CmdUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	fields := splitArgs(trimmed)
	head, rest := fields[0], fields[1:]
	for _, rule := range p.patterns {
		if rule.regex.MatchString(head) {
			p.log.Debug("matched command: %s", rule.command)
			return &domain.Command{Type: rule.command, Args: normalizeArgs(rest)}, nil
		}
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CmdUnknown, Args: []string{trimmed}}, nil
}

// splitArgs splits on whitespace and commas so "serve soda, chanh" and
// "serve soda chanh" read the same.
func splitArgs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, strings.ToLower(a))
	}
	return out
}
