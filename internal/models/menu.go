package models

import "errors"

var ErrMenuShape = errors.New("menu does not have an action list")

type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type MenuItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	OnPress func() `json:"-"`
}

// MenuNode is either a leaf holding an Item or a container of Children.
type MenuNode struct {
	Item     *MenuItem   `json:"item,omitempty"`
	Children []*MenuNode `json:"children,omitempty"`
}

// Menu is a channel context menu. The host renders Root, whose single child
// is the container of actions.
type Menu struct {
	Channel *Channel  `json:"channel,omitempty"`
	Root    *MenuNode `json:"root"`
}

// ActionList returns the container that actions are appended to.
func (m *Menu) ActionList() (*MenuNode, error) {
	if m == nil || m.Root == nil || m.Root.Item != nil || len(m.Root.Children) != 1 {
		return nil, ErrMenuShape
	}
	list := m.Root.Children[0]
	if list == nil || list.Item != nil {
		return nil, ErrMenuShape
	}
	return list, nil
}

// Items flattens the menu into its leaves in render order.
func (m *Menu) Items() []*MenuItem {
	if m == nil {
		return nil
	}
	var items []*MenuItem
	var walk func(n *MenuNode)
	walk = func(n *MenuNode) {
		if n == nil {
			return
		}
		if n.Item != nil {
			items = append(items, n.Item)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(m.Root)
	return items
}

type MenuMiddleware func(menu *Menu)

type MenuToken uint64
