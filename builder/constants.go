// SPDX-License-Identifier: MIT

package builder

// Stage names used as error and log context.
const (
	MethodBuild       = "Build"
	MethodPlan        = "plan"
	MethodMaterialize = "materialize"
	MethodTarget      = "target"
	MethodApply       = "apply"
)

// Skip reasons, used as the metrics label of units_skipped_total.
const (
	ReasonUnresolved  = "unresolved"
	ReasonUnknownKind = "unknown_kind"
	ReasonPanic       = "panic"
	ReasonApply       = "apply"
	ReasonInvalid     = "invalid"
)

// DefaultLifeExpectancy is used when neither a parent nor a child carries a species.
const DefaultLifeExpectancy = 80.0

// defaultRNGSeed backs the RNG when no WithRand/WithSeed is given.
const defaultRNGSeed int64 = 1
