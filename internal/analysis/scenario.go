// Package analysis classifies a corpus into routing queues, counts retention
// violations, and assembles a report for the scenario a free-text query selects.
// Everything is inferred from document names; contents are never read.
package analysis

import (
	"slices"
	"strings"
)

// Scenario is a canned report shape selected by query keywords.
type Scenario string

const (
	Financial  Scenario = "FINANCIAL"
	Compliance Scenario = "COMPLIANCE"
	Entity     Scenario = "ENTITY"
	Default    Scenario = "DEFAULT"
)

// Rule pairs a scenario with the keywords that select it.
type Rule struct {
	Scenario Scenario `json:"scenario" yaml:"scenario"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// rules is evaluated top-down; the first rule with a matching keyword wins.
var rules = []Rule{
	{Financial, []string{"invoice", "total", "cost", "money", "vendor", "value"}},
	{Compliance, []string{"risk", "compliance", "alert", "safety", "check", "violation"}},
	{Entity, []string{"entities", "extract", "key", "summary", "list", "who", "where"}},
}

// Interpret selects the scenario for query. Matching is a lowercase substring
// test, so "invoices" matches "invoice". Queries matching no rule, including
// empty ones, select Default.
func Interpret(query string) Scenario {
	q := strings.ToLower(query)
	for _, r := range rules {
		if slices.ContainsFunc(r.Keywords, func(k string) bool {
			return strings.Contains(q, k)
		}) {
			return r.Scenario
		}
	}
	return Default
}

// Scenarios returns a copy of the ordered rule table followed by the
// keyword-less Default entry.
func Scenarios() []Rule {
	out := make([]Rule, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, Rule{Scenario: r.Scenario, Keywords: slices.Clone(r.Keywords)})
	}
	return append(out, Rule{Scenario: Default, Keywords: []string{}})
}
