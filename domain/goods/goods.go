/*
Package goods is the catalog context: a tree of folders and goods.

Invariants held by every constructor and mutator:
  - a FOLDER never has a SKU, a GOODS always has one
  - only a FOLDER can be a parent
  - a FOLDER can't become inactive while one of its children is active
  - a node can't become active while its parent is inactive

Nodes don't point at their parent or children. They share a Tree that keeps
the nodes by id plus a parent -> children index.
*/
package goods

import (
	"fmt"
	"strings"

	"tgorders/domain/shared"

	"github.com/google/uuid"
)

type GoodsType string

const (
	TypeGoods  GoodsType = "GOODS"
	TypeFolder GoodsType = "FOLDER"
)

func ParseType(s string) (GoodsType, error) {
	switch t := GoodsType(strings.ToUpper(s)); t {
	case TypeGoods, TypeFolder:
		return t, nil
	}
	return "", shared.NewValidationError("goods", "type", "unknown goods type "+s)
}

// Goods aggregate root
type Goods struct {
	id        string
	name      string
	goodsType GoodsType
	sku       *string
	isActive  bool
	parentID  *string

	tree *Tree

	shared.EventLog
}

// New creates a node under parent (nil for the root) and records GoodsCreatedEvent.
// A node created under an inactive folder starts inactive.
func New(name string, goodsType GoodsType, sku *string, parent *Goods) (*Goods, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate goods ID: %w", err)
	}
	return NewWithID(id.String(), name, goodsType, sku, parent)
}

// NewWithID is New with a caller supplied id (imports, tests).
func NewWithID(id, name string, goodsType GoodsType, sku *string, parent *Goods) (*Goods, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("goods", "name", "goods name is required")
	}
	if goodsType != TypeGoods && goodsType != TypeFolder {
		return nil, shared.NewValidationError("goods", "type", "unknown goods type "+string(goodsType))
	}
	if err := checkSKU(id, goodsType, sku); err != nil {
		return nil, err
	}

	g := &Goods{
		id:        id,
		name:      name,
		goodsType: goodsType,
		sku:       copySKU(sku),
		isActive:  true,
		EventLog:  shared.NewEventLog(),
	}

	if parent != nil {
		if parent.goodsType != TypeFolder {
			return nil, NewGoodsTypeCantBeParentError(parent.id)
		}
		parentID := parent.id
		g.parentID = &parentID
		g.isActive = parent.isActive
		parent.tree.Add(g)
	} else {
		NewTree(g)
	}

	g.Record(NewGoodsCreatedEvent(g.id, g.name, g.goodsType, g.sku, g.parentID))
	return g, nil
}

func checkSKU(id string, goodsType GoodsType, sku *string) error {
	switch {
	case goodsType == TypeFolder && sku != nil:
		return NewCantSetFolderSKUError(id)
	case goodsType == TypeGoods && sku == nil:
		return NewGoodsMustHaveSKUError(id)
	}
	return nil
}

func copySKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	v := *sku
	return &v
}

// ============================================================================
// Behaviour
// ============================================================================

func (g *Goods) ChangeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("goods", "name", "goods name is required")
	}
	g.name = name
	return nil
}

// ChangeSKU sets or clears (nil) the SKU.
func (g *Goods) ChangeSKU(sku *string) error {
	if err := checkSKU(g.id, g.goodsType, sku); err != nil {
		return err
	}
	g.sku = copySKU(sku)
	return nil
}

func (g *Goods) ChangeActiveStatus(active bool) error {
	if active == g.isActive {
		return nil
	}

	if !active && g.goodsType == TypeFolder {
		for _, child := range g.Children() {
			if child.isActive {
				return NewCantMakeInactiveWithActiveChildrenError(g.id)
			}
		}
	}

	if active {
		if parent, ok := g.Parent(); ok && !parent.isActive {
			return NewCantMakeActiveWithInactiveParentError(g.id)
		}
	}

	g.isActive = active
	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (g *Goods) ID() string          { return g.id }
func (g *Goods) AggregateID() string { return g.id }
func (g *Goods) Name() string        { return g.name }
func (g *Goods) Type() GoodsType     { return g.goodsType }
func (g *Goods) SKU() *string        { return copySKU(g.sku) }
func (g *Goods) IsActive() bool      { return g.isActive }
func (g *Goods) IsFolder() bool      { return g.goodsType == TypeFolder }

func (g *Goods) ParentID() *string {
	if g.parentID == nil {
		return nil
	}
	v := *g.parentID
	return &v
}

// Parent resolves the parent through the tree.
func (g *Goods) Parent() (*Goods, bool) {
	if g.parentID == nil {
		return nil, false
	}
	return g.tree.Get(*g.parentID)
}

// Children resolves the children through the tree.
func (g *Goods) Children() []*Goods {
	return g.tree.Children(g.id)
}

// ============================================================================
// Reconstruction
// ============================================================================

type ReconstructionDTO struct {
	ID       string
	Name     string
	Type     GoodsType
	SKU      *string
	IsActive bool
	ParentID *string
}

// RebuildFromDTO hydrates a stored node in its own tree. Use Tree.Add to link it
// with its relatives.
func RebuildFromDTO(dto ReconstructionDTO) *Goods {
	g := &Goods{
		id:        dto.ID,
		name:      dto.Name,
		goodsType: dto.Type,
		sku:       copySKU(dto.SKU),
		isActive:  dto.IsActive,
		EventLog:  shared.NewEventLog(),
	}
	if dto.ParentID != nil {
		parentID := *dto.ParentID
		g.parentID = &parentID
	}
	NewTree(g)
	return g
}

var _ shared.AggregateRoot = (*Goods)(nil)
