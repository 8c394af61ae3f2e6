// Package rules provides the lint rule implementations for groqkit.
//
// Rules are organized by category:
//   - filter: constraints that defeat index usage (joins, computed values)
//   - join: dereference fan-out and redundancy
//   - pagination: offset paging and page size
//   - size: raw query text size
//   - order: order() arguments
//   - schema: schema-aware type and field checks
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/groqkit/groqkit/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/groqkit/groqkit/pkg/lint/rules/filter"
//	import _ "github.com/groqkit/groqkit/pkg/lint/rules/schema"
package rules
