// Package renderer implements the kustomize directive pipeline: scanning
// page text for fenced directives, resolving each path token to a real
// directory, invoking the external builder, shallow-merging inline
// overrides into the resulting manifest stream, and emitting either a
// fenced YAML block or an HTML resource-analysis table in the directive's
// place.
//
// Every failure is contained to the directive that produced it and
// rendered as a visible error block, so a broken configuration directory
// can never abort the surrounding documentation build.
package renderer
