package domain

// CommandType classifies what the player wants to do.
type CommandType int

const (
	CmdUnknown CommandType = iota
	CmdStart
	CmdSpawn
	CmdAccept
	CmdServe
	CmdHint
	CmdPause
	CmdResume
	CmdEnd
	CmdStatus
	CmdLeaderboard
	CmdStats
	CmdJournal
	CmdRecipes
	CmdReward
	CmdDifficulty
	CmdReset
	CmdQuit
	CmdHelp
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	for name, t := range commandNames {
		if t == c {
			return name
		}
	}
	return "unknown"
}

// Command is a parsed player action.
type Command struct {
	Type CommandType
	Args []string // ingredient ids for serve, reward kind, difficulty...
}

// Arg returns the i-th argument or "".
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// commandNames maps snake_case names to CommandType values.
var commandNames = map[string]CommandType{
	"start":       CmdStart,
	"spawn":       CmdSpawn,
	"accept":      CmdAccept,
	"serve":       CmdServe,
	"hint":        CmdHint,
	"pause":       CmdPause,
	"resume":      CmdResume,
	"end":         CmdEnd,
	"status":      CmdStatus,
	"leaderboard": CmdLeaderboard,
	"stats":       CmdStats,
	"journal":     CmdJournal,
	"recipes":     CmdRecipes,
	"reward":      CmdReward,
	"difficulty":  CmdDifficulty,
	"reset":       CmdReset,
	"quit":        CmdQuit,
	"help":        CmdHelp,
}

// CommandFromString converts a snake_case command name to a CommandType.
// Returns CmdUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CmdUnknown
}
