// Package goenum provides:
//
// - A read-only registry tree built from a (possibly nested) mapping of enum constants
// - Decorated leaves (Item) with metadata and SameValue equality
// - Decorated levels (Features) with ordered values, a plain view and membership checks
// - Order-preserving sources (JSON via a pluggable driver, YAML under source/yaml)
//
// Design policy:
// - Keep only public APIs in the root package; put token plumbing under internal/.
// - Place sources under source/, the JSON Schema projection under jsonschema/, and the CLI under cmd/goenum.
// - Construction is all-or-nothing: any invalid entry fails the whole build.
//
// Typical usage:
//
//	Status := goenum.MustBuild(goenum.Of(
//		"ACTIVE", "active",
//		"INACTIVE", goenum.Pair("inactive", goenum.Meta{"description": "disabled"}),
//	))
//	Status.Features().Contains("active") // true
//	it, _ := Status.Item("INACTIVE")
//	it.Equals("inactive") // true
//
//	reg, err := goenum.BuildFrom(goenum.JSONBytes(data), goenum.Options{MaxDepth: 4})
package goenum
