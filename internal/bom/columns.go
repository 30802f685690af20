package bom

import "strings"

// Role names a semantic column resolved from a BOM table header.
type Role string

const (
	RoleLevel       Role = "level"
	RoleDescription Role = "description"
	RoleMaterial    Role = "material"
	RoleAuthQty     Role = "auth_qty"
	RoleOnHandQty   Role = "oh_qty"
	RoleUnit        Role = "unit"
	RoleImage       Role = "image"
)

// ColumnMap resolves semantic roles to zero-based column indexes.
type ColumnMap map[Role]int

// Index returns the column index claimed by role.
func (m ColumnMap) Index(role Role) (int, bool) {
	i, ok := m[role]
	return i, ok
}

// Has reports whether a role resolved to any column.
func (m ColumnMap) Has(role Role) bool {
	_, ok := m[role]
	return ok
}

// columnRule claims one header cell for one role. Rules are evaluated in
// order per cell and the first match wins that cell; a later cell matching
// an already-claimed role overwrites the earlier index, which mirrors
// source documents that repeat a header on the right-hand half of the page.
//
// match receives the cell trimmed and upper-cased, plus the same text with
// newlines joined by single spaces for phrase rules that span wrapped
// header lines ("AUTH\nQTY").
type columnRule struct {
	role  Role
	match func(cell, joined string) bool
}

var columnRules = []columnRule{
	{RoleLevel, func(cell, _ string) bool {
		return isLevelHeader(cell)
	}},
	{RoleDescription, func(cell, _ string) bool {
		return strings.Contains(cell, "DESC")
	}},
	{RoleMaterial, func(cell, _ string) bool {
		return strings.Contains(cell, "MATERIAL") || cell == "MAT"
	}},
	{RoleAuthQty, func(_, joined string) bool {
		return (strings.Contains(joined, "AUTH") && strings.Contains(joined, "QTY")) || joined == "AUTH QTY"
	}},
	{RoleOnHandQty, func(_, joined string) bool {
		return (strings.Contains(joined, "OH") && strings.Contains(joined, "QTY")) || joined == "OH QTY"
	}},
	{RoleUnit, func(cell, _ string) bool {
		return cell == "UI" || cell == "UNIT"
	}},
	{RoleImage, func(cell, _ string) bool {
		return strings.Contains(cell, "IMAGE") || cell == "IMG"
	}},
}

// MapColumns resolves semantic column roles from a table's header row.
// Matching is case-insensitive and whitespace-trimmed. Unclaimed roles are
// simply absent from the map; callers decide per role whether absence is
// tolerable.
func MapColumns(header []string) ColumnMap {
	cols := ColumnMap{}
	for i, raw := range header {
		cell := strings.ToUpper(strings.TrimSpace(raw))
		if cell == "" {
			continue
		}
		joined := strings.ReplaceAll(cell, "\n", " ")
		for _, rule := range columnRules {
			if rule.match(cell, joined) {
				cols[rule.role] = i
				break
			}
		}
	}
	return cols
}

// rescanHeader is the secondary description-column scan used when the
// primary rules left the role unresolved. The predicate receives each cell
// trimmed and upper-cased.
func rescanHeader(header []string, match func(cell string) bool) (int, bool) {
	for i, raw := range header {
		cell := strings.ToUpper(strings.TrimSpace(raw))
		if cell != "" && match(cell) {
			return i, true
		}
	}
	return 0, false
}

// isLevelHeader matches the level-column header variants. The format
// detector shares it so the two heuristics cannot drift apart.
func isLevelHeader(cell string) bool {
	return cell == "LV" || cell == "LEVEL" || hasToken(cell, "LV")
}

func hasToken(s, token string) bool {
	for _, f := range strings.Fields(s) {
		if f == token {
			return true
		}
	}
	return false
}
