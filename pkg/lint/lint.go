// Package lint provides rule-based static analysis for GROQ queries.
//
// Rules are data-driven RuleDef values registered from init() functions in
// the rule packages under pkg/lint/rules; importing that package's all.go
// pulls in the complete rule set. The Lint entry point parses once, runs
// every enabled rule over the same tree, and applies supersession before
// returning findings.
package lint

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/schema"
	"github.com/groqkit/groqkit/pkg/token"
)

// Severity indicates the importance of a finding.
type Severity int

// Severity levels for findings.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a severity name to its Severity value.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return 0, false
	}
}

// Rule groups/categories.
const (
	GroupPerformance = "performance"
	GroupCorrectness = "correctness"
	GroupStyle       = "style"
)

// RuleDef is a data-driven rule definition. Rules are stateless; all context
// comes via the QueryContext passed to Check.
type RuleDef struct {
	ID          string    // Stable kebab-case identifier, e.g. "join-in-filter"
	Name        string    // Human-readable name, e.g. "filter.join"
	Group       string    // Category: performance, correctness, style
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function

	// Supersedes lists rule IDs whose findings are dropped when this rule
	// fires on the same query.
	Supersedes []string

	// NeedsSchema marks rules that decline to run without a schema snapshot.
	NeedsSchema bool
}

// CheckFunc analyzes a query and returns findings. A check must not panic
// for well-formed input; a panicking check is isolated and logged by the
// analyzer and contributes no findings.
type CheckFunc func(ctx *QueryContext) []Finding

// QueryContext carries everything a single rule check may consult. It is
// valid only for the duration of one check invocation.
type QueryContext struct {
	Query  string         // raw query text
	Root   ast.Expr       // parsed expression tree
	Schema *schema.Schema // optional schema snapshot; nil when absent
}

// Finding represents a lint result.
type Finding struct {
	RuleID      string
	Severity    Severity
	Message     string
	Help        string       // optional remediation hint
	Suggestions []Suggestion // optional suggested replacements
	Span        token.Span   // optional source range
}

// Suggestion is a suggested replacement for the flagged source range.
type Suggestion struct {
	Description string
	Replacement string
}
