package nav

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned by the Parse functions for values outside the
// closed set of page keys.
var ErrUnknownKey = errors.New("unknown navigation key")

// TopKey identifies a top-level header menu.
type TopKey string

const (
	TopManagement         TopKey = "management"
	TopGroupQuote         TopKey = "groupQuote"
	TopTourInformation    TopKey = "tourInformation"
	TopDocumentManagement TopKey = "documentManagement"
	TopApprovalRequest    TopKey = "approvalRequest"
	TopReports            TopKey = "reports"
)

// DefaultTop is active when no menu was chosen.
const DefaultTop = TopManagement

// TopKeys lists the header menus in display order.
var TopKeys = []TopKey{
	TopManagement,
	TopGroupQuote,
	TopTourInformation,
	TopDocumentManagement,
	TopApprovalRequest,
	TopReports,
}

// ItemKey identifies an entry in the Management drop-down.
type ItemKey string

const (
	ItemMaster                 ItemKey = "master"
	ItemSetting                ItemKey = "setting"
	ItemUserID                 ItemKey = "userId"
	ItemUnlockPasswordReset    ItemKey = "unlockPasswordReset"
	ItemDepartmentGroupInfoApp ItemKey = "departmentGroupInfoApp"
)

// ManagementItems lists the Management drop-down in display order.
var ManagementItems = []ItemKey{
	ItemMaster,
	ItemSetting,
	ItemUserID,
	ItemUnlockPasswordReset,
	ItemDepartmentGroupInfoApp,
}

func (k TopKey) String() string { return string(k) }

// LabelID is the message id of the menu label.
func (k TopKey) LabelID() string { return "app." + string(k) }

func (k ItemKey) String() string { return string(k) }

// LabelID is the message id of the item label.
func (k ItemKey) LabelID() string { return "header.managementItems." + string(k) }

// AdminOnly reports whether the item is restricted to administrators.
func (k ItemKey) AdminOnly() bool {
	return k == ItemUnlockPasswordReset
}

// Path returns the page that renders the item, or "" when the item only
// marks itself active inside the shell.
func (k ItemKey) Path() string {
	switch k {
	case ItemUserID:
		return "/app/users"
	case ItemUnlockPasswordReset:
		return "/app/unlock"
	}
	return ""
}

// ParseTop converts a query value into a TopKey. Empty means DefaultTop.
func ParseTop(v string) (TopKey, error) {
	if v == "" {
		return DefaultTop, nil
	}
	for _, k := range TopKeys {
		if string(k) == v {
			return k, nil
		}
	}
	return DefaultTop, fmt.Errorf("%w: top %q", ErrUnknownKey, v)
}

// ParseItem converts a query value into an ItemKey. Empty is allowed and
// returns ok=false.
func ParseItem(v string) (ItemKey, bool, error) {
	if v == "" {
		return "", false, nil
	}
	for _, k := range ManagementItems {
		if string(k) == v {
			return k, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: item %q", ErrUnknownKey, v)
}

// Item is a rendered drop-down entry.
type Item struct {
	Key    ItemKey
	Label  string
	Href   string
	Active bool
}

// Menu is a rendered top-level entry.
type Menu struct {
	Key    TopKey
	Label  string
	Href   string
	Active bool
	Items  []Item
}

// Translator resolves message ids to display text.
type Translator interface {
	T(id string) string
}

// Build produces the header for the given selection. Admin-only items are
// left out for regular users. Only Management carries a drop-down.
func Build(tr Translator, active TopKey, item ItemKey, isAdmin bool) []Menu {
	menus := make([]Menu, 0, len(TopKeys))
	for _, k := range TopKeys {
		m := Menu{
			Key:    k,
			Label:  tr.T(k.LabelID()),
			Href:   "/app?top=" + string(k),
			Active: k == active,
		}
		if k == TopManagement {
			for _, it := range ManagementItems {
				if it.AdminOnly() && !isAdmin {
					continue
				}
				href := it.Path()
				if href == "" {
					href = "/app?top=" + string(k) + "&item=" + string(it)
				}
				m.Items = append(m.Items, Item{
					Key:    it,
					Label:  tr.T(it.LabelID()),
					Href:   href,
					Active: m.Active && it == item,
				})
			}
		}
		menus = append(menus, m)
	}
	return menus
}
