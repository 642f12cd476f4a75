// Package sandboxspec decodes the test-job configuration format used by a
// distributed test runner: directives that bind a test filter to a
// container spec (filesystem layers, mounts, environment, user/group,
// network posture), and the container specs themselves.
//
// Decoding is driven directly off *yaml.Node so that the order fields
// appear in the source document can be enforced: several fields conflict
// with a sibling depending on which was written first (see ContainerBuilder).
package sandboxspec
