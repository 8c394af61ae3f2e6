package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule categories - each registers its rules via init()
	_ "github.com/groqkit/groqkit/pkg/lint/rules/filter"
	_ "github.com/groqkit/groqkit/pkg/lint/rules/join"
	_ "github.com/groqkit/groqkit/pkg/lint/rules/order"
	_ "github.com/groqkit/groqkit/pkg/lint/rules/pagination"
	_ "github.com/groqkit/groqkit/pkg/lint/rules/schema"
	_ "github.com/groqkit/groqkit/pkg/lint/rules/size"
)
