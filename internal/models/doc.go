// Package models defines the core domain models for the group admin backend.
//
// # Models
//
//   - User: a person that can manage or belong to groups
//   - Group: a named collection of member Users with designated managers
//
// # Design Principles
//
// 1. **Value semantics**: Groups embed User values, never pointers into the store
// 2. **Copies on read**: storage backends hand out clones, so callers may mutate freely
// 3. **Managers are not members**: a manager is not required to appear in Members
package models
