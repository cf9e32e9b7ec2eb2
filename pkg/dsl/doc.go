/*
Package dsl builds validated, immutable multistate definitions.

A Definition is the product of the configuration phase: states, groups,
and transitions registered by ID, with all cross-references resolved and
checked. Registration through the builder replaces the mutable
State-to-StateGroup back-reference of an ad-hoc setup: group membership
is wired in one place, and conflicts (a state in two groups, dangling
references, negative costs) surface as configuration errors at Build time
instead of at a distance during execution. Redeclaring an id through the
builder extends the earlier declaration; the YAML loader treats a
duplicated id in one document as a mistake and rejects it.

Definitions can be composed in code:

	b := dsl.New()
	b.State("login").Name("Login")
	b.State("menu").Name("Menu")
	b.Transition("open_menu").From("login").Activate("menu").Exit("login")
	def, err := b.Build()

or loaded from a YAML document via Load / LoadFile.
*/
package dsl
