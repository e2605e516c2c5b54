// Package service implements the editing session for netdiagram.
//
// DiagramService owns one domain.State and serialises every operation on it
// behind a mutex, so HTTP handlers may call it concurrently. It coordinates
// the pieces around the pure domain model:
//
//   - codec for JSON, YAML, CSV and Ansible interchange
//   - repository for named snapshots of the save document
//   - metrics for interchange and entity counts
//   - EventBus for change notifications
//
// Reads return deep copies; callers never see live state.
package service
