// Package catalog maps project-type identifiers to bundled template
// directories. The mapping is static and built once at startup; whether the
// mapped directory actually exists on disk is checked at resolve time.
//
// A template may carry an optional template.yaml manifest describing itself
// (version, tool requirements, install command). Manifests are validated
// against an embedded JSON schema.
package catalog
