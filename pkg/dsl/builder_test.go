package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/multistate/pkg/domain"
	"github.com/aretw0/multistate/pkg/dsl"
)

func TestBuilder_CompilesDefinition(t *testing.T) {
	b := dsl.New()
	b.State("login").Name("Login Screen").
		Element("user_field", "Username", "input").
		Weight(2.0)
	b.State("menu")
	b.State("toolbar")
	b.State("sidebar")
	b.Group("workspace", "toolbar", "sidebar").Name("Workspace")
	b.Transition("open_menu").Name("Open Menu").
		From("login").Activate("menu").Exit("login").
		Cost(0.5).Visibility(domain.VisibilityHide)
	b.Transition("open_workspace").
		From("menu").ActivateGroups("workspace")

	def, err := b.Build()
	require.NoError(t, err)

	login, ok := def.State("login")
	require.True(t, ok)
	assert.Equal(t, "Login Screen", login.Name)
	assert.True(t, login.HasElement("user_field"))
	assert.Equal(t, 2.0, login.InitialWeight)

	toolbar, _ := def.State("toolbar")
	assert.Equal(t, "workspace", toolbar.Group, "group registration wires the back-reference")

	ws, ok := def.Group("workspace")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"toolbar", "sidebar"}, ws.States.IDs())

	open, ok := def.Transition("open_menu")
	require.True(t, ok)
	assert.Equal(t, 0.5, open.Cost)
	assert.Equal(t, domain.VisibilityHide, open.Visibility)

	opens, ok := def.Transition("open_workspace")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"sidebar", "toolbar"}, opens.StatesToActivate().IDs())

	// Transitions keep declaration order.
	var ids []string
	for _, tr := range def.Transitions() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"open_menu", "open_workspace"}, ids)
}

func TestBuilder_RedeclarationReturnsSameBuilder(t *testing.T) {
	b := dsl.New()
	b.State("login").Weight(2.0)
	b.State("login").Cost(3.0) // same builder, not a duplicate

	def, err := b.Build()
	require.NoError(t, err)
	login, _ := def.State("login")
	assert.Equal(t, 2.0, login.InitialWeight)
	assert.Equal(t, 3.0, login.SearchCost)
}

func TestBuilder_CollectsAllErrors(t *testing.T) {
	b := dsl.New()
	b.State("a")
	b.State("b").Blocks("ghost")
	b.Group("g1", "a")
	b.Group("g2", "a") // conflict: a already in g1
	b.Transition("t1").From("missing").Cost(-1)
	b.Transition("t2").Activate("also_missing")

	_, err := b.Build()
	require.Error(t, err)

	errs := dsl.ConfigErrors(err)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
	assert.ErrorIs(t, err, domain.ErrGroupConflict)
	// t1 fails on the cost before resolving references; the sentinel must
	// still surface through the aggregate.
	assert.ErrorIs(t, err, domain.ErrInvalidCost)
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestBuilder_GroupConflict(t *testing.T) {
	b := dsl.New()
	b.State("s")
	b.Group("first", "s")
	b.Group("second", "s")

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGroupConflict)
}

func TestBuilder_IncomingActionMustMatchActivation(t *testing.T) {
	b := dsl.New()
	b.State("a")
	b.State("b")
	b.Transition("t").Activate("a").
		OnEnter("b", func() error { return nil })

	_, err := b.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}

func TestBuilder_IncomingActionViaGroupMember(t *testing.T) {
	b := dsl.New()
	b.State("toolbar")
	b.Group("workspace", "toolbar")
	b.Transition("t").ActivateGroups("workspace").
		OnEnter("toolbar", func() error { return nil })

	def, err := b.Build()
	require.NoError(t, err)
	tr, _ := def.Transition("t")
	_, ok := tr.IncomingActionFor("toolbar")
	assert.True(t, ok, "group members count as activated")
}

func TestDefinition_StateSetResolvesByID(t *testing.T) {
	b := dsl.New()
	b.State("a")
	b.State("b")
	def, err := b.Build()
	require.NoError(t, err)

	ss, err := def.StateSet("a", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ss.IDs())

	_, err = def.StateSet("a", "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownReference)
}
