// Package corpus loads producer output from JSON or YAML files.
//
// A corpus file has an optional version and a list of items; each item
// lists its units in order. Unit positions are either given for every
// unit or for none, in which case they are assigned sequentially from 0.
// When no version is given, the version is derived from a SHA-256 hash
// of the file content so that any edit yields a new version.
//
// A phrase file lists generated phrases, each naming its owning position.
package corpus
