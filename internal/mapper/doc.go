// Package mapper writes the pipeline's output artifacts.
//
// Three writers: the project-level benefits CSV, the link-level detail CSV
// carrying every derived column, and (when a geometry column is bound) an
// annotated GeoJSON copy of the build network for visual QA in a mapping
// tool. All numeric cells use shortest-round-trip formatting and all row
// orders are fixed upstream, so identical inputs always produce
// byte-identical files.
//
// Nothing here is called until the merge stage has finished; a cancelled run
// writes no file at all.
package mapper
