package git

import (
	goerrors "errors"
	"strings"

	helowriteerrors "helowrite.dev/helowrite/internal/errors"
)

// Condition classifies the combined output of a failed git command into a
// known situation the sync workflow can act on. Matching is substring-based
// against git's English output; localized git output is a known limitation.
// Keeping the whole heuristic in this one table means an updated git version
// only requires touching this file, not the workflow control flow.
type Condition int

const (
	// ConditionUnknown means the failure matched no known pattern
	ConditionUnknown Condition = iota
	// ConditionNothingToStash means there were no local changes to stash
	ConditionNothingToStash
	// ConditionNoStashEntries means there was no stash to pop
	ConditionNoStashEntries
	// ConditionNothingToCommit means the commit had no staged changes
	ConditionNothingToCommit
	// ConditionUpToDate means the remote already has everything (push) or
	// the local branch already has everything (pull)
	ConditionUpToDate
	// ConditionNoTracking means the current branch has no tracking information
	ConditionNoTracking
	// ConditionRemoteAhead means the push was rejected because the remote
	// contains work the local branch does not have
	ConditionRemoteAhead
	// ConditionNoUpstream means the push failed because no upstream is set
	ConditionNoUpstream
)

// String returns the string representation of a Condition.
func (c Condition) String() string {
	switch c {
	case ConditionNothingToStash:
		return "nothing to stash"
	case ConditionNoStashEntries:
		return "no stash entries"
	case ConditionNothingToCommit:
		return "nothing to commit"
	case ConditionUpToDate:
		return "up to date"
	case ConditionNoTracking:
		return "no tracking information"
	case ConditionRemoteAhead:
		return "remote ahead"
	case ConditionNoUpstream:
		return "no upstream"
	default:
		return "unknown"
	}
}

// conditionPatterns maps git output substrings to conditions. More specific
// patterns come first; the first match wins.
var conditionPatterns = []struct {
	substr    string
	condition Condition
}{
	{"No local changes to save", ConditionNothingToStash},
	{"No stash entries found", ConditionNoStashEntries},
	{"nothing to commit", ConditionNothingToCommit},
	{"There is no tracking information", ConditionNoTracking},
	{"Updates were rejected because the remote contains work", ConditionRemoteAhead},
	{"no upstream branch", ConditionNoUpstream},
	{"Everything up-to-date", ConditionUpToDate},
	{"Already up to date", ConditionUpToDate},
	{"up to date", ConditionUpToDate},
}

// Classify inspects the combined stdout/stderr of a failed git command and
// returns the matching Condition. Errors that are not GitCommandErrors are
// always ConditionUnknown.
func Classify(err error) Condition {
	var cmdErr *helowriteerrors.GitCommandError
	if !goerrors.As(err, &cmdErr) {
		return ConditionUnknown
	}
	return ClassifyOutput(cmdErr.Output())
}

// ClassifyOutput classifies raw git output text.
func ClassifyOutput(output string) Condition {
	for _, p := range conditionPatterns {
		if strings.Contains(output, p.substr) {
			return p.condition
		}
	}
	return ConditionUnknown
}
