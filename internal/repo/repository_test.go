package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/errs"
)

func TestManager_AddGetListRemove(t *testing.T) {
	m := New()
	m.Add("a", "/repos/a", nil)
	m.Add("b", "/repos/b", []string{"a"})

	assert.Equal(t, []string{"a", "b"}, m.List())

	r, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, "/repos/a", r.Path)

	m.Remove("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, m.List())

	rb, _ := m.Get("b")
	assert.Equal(t, []string{"a"}, rb.Dependencies, "remove does not cascade into other deps lists")
}

func TestManager_Add_ReplacesExistingEntry(t *testing.T) {
	m := New()
	m.Add("a", "/old", []string{"x"})
	m.Add("a", "/new", nil)

	r, _ := m.Get("a")
	assert.Equal(t, "/new", r.Path)
	assert.Empty(t, r.Dependencies)
	assert.Equal(t, []string{"a"}, m.List(), "replacing an entry must not duplicate it in List order")
}

// TestManager_S4_DependencyOrder implements spec's literal S4 scenario:
// {A deps [B], B deps [C], C deps []} -> dependencyOrder() == [C, B, A].
func TestManager_S4_DependencyOrder(t *testing.T) {
	m := New()
	m.Add("A", "/a", []string{"B"})
	m.Add("B", "/b", []string{"C"})
	m.Add("C", "/c", nil)

	order, err := m.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, order)
	assert.False(t, m.HasCycle())
}

// TestManager_S5_CyclicDependency implements spec's literal S5 scenario:
// {A deps [B], B deps [A]} -> dependencyOrder() fails with CyclicDependency.
func TestManager_S5_CyclicDependency(t *testing.T) {
	m := New()
	m.Add("A", "/a", []string{"B"})
	m.Add("B", "/b", []string{"A"})

	_, err := m.DependencyOrder()
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CyclicDependency))
	assert.True(t, m.HasCycle())
}

func TestManager_DependencyOrder_ToleratesDanglingDependency(t *testing.T) {
	m := New()
	m.Add("A", "/a", []string{"missing"})

	order, err := m.DependencyOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, order)
}

func TestManager_DependencyOrder_DiamondIsDeterministic(t *testing.T) {
	m := New()
	m.Add("app", "/app", []string{"libA", "libB"})
	m.Add("libA", "/liba", []string{"core"})
	m.Add("libB", "/libb", []string{"core"})
	m.Add("core", "/core", nil)

	order, err := m.DependencyOrder()
	require.NoError(t, err)
	require.Len(t, order, 4)
	assert.Equal(t, "core", order[0])
	assert.Equal(t, "app", order[3])
}

func TestManager_SortedNames(t *testing.T) {
	m := New()
	m.Add("zeta", "/z", nil)
	m.Add("alpha", "/a", nil)
	assert.Equal(t, []string{"alpha", "zeta"}, m.SortedNames())
}

func TestManager_ReplaceFrom(t *testing.T) {
	m := New()
	m.Add("old", "/old", nil)

	other := New()
	other.Add("new", "/new", nil)

	m.ReplaceFrom(other)
	assert.Equal(t, []string{"new"}, m.List())
	_, ok := m.Get("old")
	assert.False(t, ok)
}
