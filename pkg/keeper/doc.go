// Package keeper implements the generic in-memory list store at the heart
// of listd. A Keeper owns an ordered collection of items of one entry kind,
// assigns monotonically increasing integer ids, and exposes validated
// create/list/get/update/done/delete operations that return typed outcomes
// instead of panicking on expected failures.
package keeper
