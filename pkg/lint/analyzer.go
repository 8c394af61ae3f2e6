package lint

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/groqkit/groqkit/pkg/parser"
	"github.com/groqkit/groqkit/pkg/schema"
)

// Options configures a Lint invocation.
type Options struct {
	// Schema is the optional schema snapshot. Schema-requiring rules are
	// skipped when it is nil.
	Schema *schema.Schema

	// Config controls rule selection and severity. Nil runs everything
	// with defaults.
	Config *Config

	// Logger receives recovered rule panics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of linting one query.
type Result struct {
	Findings []Finding

	// ParseError is set when the query did not parse; no rules ran.
	ParseError string
}

// Lint analyzes a single query and returns its findings in deterministic
// order. A parse failure is returned as data, not an error, so batch callers
// can report it and continue.
func Lint(query string, opts Options) Result {
	if strings.TrimSpace(query) == "" {
		return Result{}
	}

	root, err := parser.Parse(query)
	if err != nil {
		return Result{ParseError: err.Error()}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	qctx := &QueryContext{Query: query, Root: root, Schema: opts.Schema}

	rules := GetAll()
	fired := make(map[string]bool)
	var findings []Finding

	for _, rule := range rules {
		if !opts.Config.ShouldRun(rule.ID) {
			continue
		}
		if rule.NeedsSchema && opts.Schema == nil {
			continue
		}

		ruleFindings := runRule(rule, qctx, logger)
		if len(ruleFindings) == 0 {
			continue
		}
		fired[rule.ID] = true
		severity := opts.Config.GetSeverity(rule.ID, rule.Severity)
		for i := range ruleFindings {
			ruleFindings[i].RuleID = rule.ID
			ruleFindings[i].Severity = severity
		}
		findings = append(findings, ruleFindings...)
	}

	return Result{Findings: applySupersession(rules, fired, findings)}
}

// runRule executes one rule's check, isolating panics: a buggy rule is
// logged and contributes zero findings rather than aborting the run.
func runRule(rule RuleDef, qctx *QueryContext, logger *slog.Logger) (findings []Finding) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("lint rule panicked",
				"rule", rule.ID,
				"error", fmt.Sprint(r))
			findings = nil
		}
	}()
	return rule.Check(qctx)
}

// applySupersession drops findings whose rule is superseded by another rule
// that also fired on this query. Supersession is data-dependent: a rule that
// produced no findings suppresses nothing.
func applySupersession(rules []RuleDef, fired map[string]bool, findings []Finding) []Finding {
	superseded := make(map[string]bool)
	for _, rule := range rules {
		if !fired[rule.ID] {
			continue
		}
		for _, id := range rule.Supersedes {
			if id != rule.ID {
				superseded[id] = true
			}
		}
	}
	if len(superseded) == 0 {
		return findings
	}

	kept := findings[:0]
	for _, f := range findings {
		if !superseded[f.RuleID] {
			kept = append(kept, f)
		}
	}
	return kept
}
