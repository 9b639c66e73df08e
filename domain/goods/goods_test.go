package goods

import (
	"testing"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sku(s string) *string { return &s }

func TestNew_FolderSKUInvariant(t *testing.T) {
	_, err := New("Drinks", TypeFolder, sku("1"), nil)
	assert.ErrorIs(t, err, ErrCantSetFolderSKU)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = New("Cola", TypeGoods, nil, nil)
	assert.ErrorIs(t, err, ErrGoodsMustHaveSKU)

	folder, err := New("Drinks", TypeFolder, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, folder.SKU())

	item, err := New("Cola", TypeGoods, sku("C-1"), folder)
	require.NoError(t, err)
	assert.Equal(t, "C-1", *item.SKU())
}

func TestChangeSKU_KeepsInvariant(t *testing.T) {
	folder, err := New("Drinks", TypeFolder, nil, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, folder.ChangeSKU(sku("X")), ErrCantSetFolderSKU)
	assert.Nil(t, folder.SKU())

	item, err := New("Cola", TypeGoods, sku("C-1"), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, item.ChangeSKU(nil), ErrGoodsMustHaveSKU)
	assert.Equal(t, "C-1", *item.SKU())

	require.NoError(t, item.ChangeSKU(sku("C-2")))
	assert.Equal(t, "C-2", *item.SKU())
}

func TestNew_OnlyFolderCanBeParent(t *testing.T) {
	item, err := New("Cola", TypeGoods, sku("C-1"), nil)
	require.NoError(t, err)

	_, err = New("Fanta", TypeGoods, sku("F-1"), item)
	assert.ErrorIs(t, err, ErrGoodsTypeCantBeParent)
}

func TestChangeActiveStatus_Propagation(t *testing.T) {
	f, err := New("Drinks", TypeFolder, nil, nil)
	require.NoError(t, err)
	g, err := New("Cola", TypeGoods, sku("C-1"), f)
	require.NoError(t, err)
	require.True(t, f.IsActive())
	require.True(t, g.IsActive())

	assert.ErrorIs(t, f.ChangeActiveStatus(false), ErrCantMakeInactiveWithActiveChildren)
	assert.True(t, f.IsActive())

	require.NoError(t, g.ChangeActiveStatus(false))
	require.NoError(t, f.ChangeActiveStatus(false))
	assert.False(t, f.IsActive())

	assert.ErrorIs(t, g.ChangeActiveStatus(true), ErrCantMakeActiveWithInactiveParent)
	assert.False(t, g.IsActive())

	require.NoError(t, f.ChangeActiveStatus(true))
	require.NoError(t, g.ChangeActiveStatus(true))
}

func TestNew_UnderInactiveFolderStartsInactive(t *testing.T) {
	f, err := New("Archive", TypeFolder, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.ChangeActiveStatus(false))

	g, err := New("Old", TypeGoods, sku("O-1"), f)
	require.NoError(t, err)
	assert.False(t, g.IsActive())
}

func TestTree_HydratedFamily(t *testing.T) {
	parentID := "f"
	f := RebuildFromDTO(ReconstructionDTO{ID: "f", Name: "Drinks", Type: TypeFolder, IsActive: true})
	b := RebuildFromDTO(ReconstructionDTO{ID: "b", Name: "Beer", Type: TypeGoods, SKU: sku("B"), IsActive: true, ParentID: &parentID})
	a := RebuildFromDTO(ReconstructionDTO{ID: "a", Name: "Ale", Type: TypeGoods, SKU: sku("A"), IsActive: false, ParentID: &parentID})
	sub := RebuildFromDTO(ReconstructionDTO{ID: "s", Name: "Soft", Type: TypeFolder, IsActive: false, ParentID: &parentID})
	NewTree(f, b, a, sub)

	children := f.Children()
	require.Len(t, children, 3)
	assert.Equal(t, []string{"s", "a", "b"}, []string{children[0].ID(), children[1].ID(), children[2].ID()})

	parent, ok := b.Parent()
	require.True(t, ok)
	assert.Same(t, f, parent)

	assert.ErrorIs(t, f.ChangeActiveStatus(false), ErrCantMakeInactiveWithActiveChildren)
	f.tree.Remove("b")
	require.NoError(t, f.ChangeActiveStatus(false))
}

func TestNew_RecordsCreatedEvent(t *testing.T) {
	g, err := New("Cola", TypeGoods, sku("C-1"), nil)
	require.NoError(t, err)

	events := g.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "goods.created", events[0].EventName())
	assert.Equal(t, g.ID(), events[0].GetAggregateID())

	rebuilt := RebuildFromDTO(ReconstructionDTO{ID: "x", Name: "X", Type: TypeGoods, SKU: sku("1"), IsActive: true})
	assert.Empty(t, rebuilt.Events())
}

func TestListingSpecification(t *testing.T) {
	parentID := "f"
	root := RebuildFromDTO(ReconstructionDTO{ID: "r", Name: "Root", Type: TypeFolder, IsActive: true})
	active := RebuildFromDTO(ReconstructionDTO{ID: "a", Name: "A", Type: TypeGoods, SKU: sku("A"), IsActive: true, ParentID: &parentID})
	inactive := RebuildFromDTO(ReconstructionDTO{ID: "i", Name: "I", Type: TypeGoods, SKU: sku("I"), IsActive: false, ParentID: &parentID})

	assert.True(t, Listing(nil, false).IsSatisfiedBy(root))
	assert.False(t, Listing(nil, false).IsSatisfiedBy(active))
	assert.True(t, Listing(&parentID, true).IsSatisfiedBy(active))
	assert.False(t, Listing(&parentID, true).IsSatisfiedBy(inactive))
	assert.True(t, Listing(&parentID, false).IsSatisfiedBy(inactive))
}

type testActor struct {
	levels []accesslevel.AccessLevel
}

func (a testActor) UserID() int64 { return 1 }
func (a testActor) IsBlocked() bool {
	return accesslevel.Contains(a.levels, accesslevel.Blocked)
}
func (a testActor) IsAdmin() bool {
	return accesslevel.Contains(a.levels, accesslevel.Administrator)
}
func (a testActor) CanConfirmOrder() bool {
	return accesslevel.Contains(a.levels, accesslevel.Confirmation)
}

func TestUserBasedPolicy(t *testing.T) {
	cases := []struct {
		name       string
		levels     []accesslevel.AccessLevel
		read, edit bool
	}{
		{"user", []accesslevel.AccessLevel{accesslevel.User}, true, false},
		{"admin", []accesslevel.AccessLevel{accesslevel.Administrator}, true, true},
		{"blocked", []accesslevel.AccessLevel{accesslevel.Blocked}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewUserBasedPolicy(testActor{levels: tc.levels})
			assert.Equal(t, tc.read, p.ReadGoods())
			assert.Equal(t, tc.edit, p.ModifyGoods())
		})
	}
}
