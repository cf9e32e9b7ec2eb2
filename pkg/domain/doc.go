/*
Package domain contains the core value types of the multistate model:
elements, states, state groups, transitions, and the structured results
produced by executing transitions or searching for paths.

The central generalization over a classic state machine is that the
"current state" is a set. StateSet is the working representation of an
active configuration; transitions describe deltas against it (states to
activate, states to exit) rather than a single source/target pair.

All identity-carrying types (Element, State, StateGroup, Transition) are
identified by their ID alone. Payload fields are mutable during the
configuration phase and treated as read-only afterwards; see pkg/dsl for
the registration step that wires group membership and validates the model.
*/
package domain
