// Package entry defines the concrete entry kinds listd keeps: tasks,
// groceries, and quiz cards. Kind-specific behavior lives entirely here,
// in the Validate rules and done-verb wording; everything else is the
// generic keeper.
package entry
