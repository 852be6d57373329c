// Package writers turns a normalised posterior into serialized output.
//
// Design:
//   • Writers own all presentation knowledge (layout, precision, ordering).
//   • Engine stays domain-only; Pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
