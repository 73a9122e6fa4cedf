// Package symbols implements the symbol table (C2): a stack of lexical
// scopes plus separate global registries for classes and functions,
// grounded on the teacher's internal/symbols package but restructured
// around spec.md §4.2's explicit push/pop + define/resolve operations.
package symbols

import (
	"fmt"
	"strings"

	"github.com/cslang/compiscript/internal/config"
	"github.com/cslang/compiscript/internal/types"
)

// Param is one (name, type) entry of an ordered parameter list.
type Param struct {
	Name string
	Type types.Type
}

// Variable is a name bound to a type in a lexical scope.
type Variable struct {
	Name    string
	Type    types.Type
	IsConst bool
}

// Function is a globally registered free function.
type Function struct {
	Name       string
	Params     []Param
	ReturnType types.Type
}

// Member is a field or method of a Class. The constructor is stored as a
// Member under config.CtorMemberName.
type Member struct {
	Name       string
	IsMethod   bool
	Type       types.Type // for fields
	Params     []Param    // for methods/constructor
	ReturnType types.Type // for methods/constructor
}

// Class is a globally registered nominal object type.
type Class struct {
	Name        string
	Members     map[string]*Member
	MemberOrder []string
	BaseName    string
	HasBase     bool
}

// AddMember records a member in declaration order; returns false if the
// name already exists on this class (uniqueness, spec.md §4.4).
func (c *Class) AddMember(m *Member) bool {
	if _, exists := c.Members[m.Name]; exists {
		return false
	}
	c.Members[m.Name] = m
	c.MemberOrder = append(c.MemberOrder, m.Name)
	return true
}

// Ctor returns the class's own constructor member, if declared directly
// on it (not inherited).
func (c *Class) Ctor() (*Member, bool) {
	m, ok := c.Members[config.CtorMemberName]
	return m, ok
}

// scope is one lexical scope frame: an ordered mapping from name to
// Variable, plus an "occupied" set used to detect collisions against
// function names registered while this frame was current (spec.md §3
// invariant 1).
type scope struct {
	order    []string
	vars     map[string]*Variable
	occupied map[string]bool
}

func newScope() *scope {
	return &scope{vars: make(map[string]*Variable), occupied: make(map[string]bool)}
}

// Table is the complete symbol table: the scope stack plus the global
// class and function registries.
type Table struct {
	scopes    []*scope
	functions map[string]*Function
	funcOrder []string
	classes   map[string]*Class
	classOrder []string
}

// New creates a Table with its mandatory, never-popped global scope.
func New() *Table {
	t := &Table{
		functions: make(map[string]*Function),
		classes:   make(map[string]*Class),
	}
	t.scopes = []*scope{newScope()}
	return t
}

// PushScope enters a new lexical scope (block, function/method/constructor
// body, for/foreach/try-catch region).
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, newScope())
}

// PopScope leaves the innermost scope. Popping the global scope is
// forbidden and is a no-op, guarding the invariant that the stack never
// drops below depth 1.
func (t *Table) PopScope() {
	if len(t.scopes) <= 1 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports the current scope stack depth (1 = only the global scope).
func (t *Table) Depth() int { return len(t.scopes) }

func (t *Table) current() *scope { return t.scopes[len(t.scopes)-1] }

// DefineVariable binds sym in the current scope. Returns false if the
// current scope already binds that name (as a variable or a function
// registered while this scope was current).
func (t *Table) DefineVariable(sym *Variable) bool {
	s := t.current()
	if s.occupied[sym.Name] {
		return false
	}
	s.occupied[sym.Name] = true
	s.vars[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return true
}

// ResolveVariable searches from the innermost to the outermost scope and
// returns the first Variable bound to name.
func (t *Table) ResolveVariable(name string) (*Variable, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if v, ok := t.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// DefineFunction registers sym in the global function registry. Returns
// false if a function with that name already exists globally. On success
// the name is also marked occupied in the current scope.
func (t *Table) DefineFunction(sym *Function) bool {
	if _, exists := t.functions[sym.Name]; exists {
		return false
	}
	t.functions[sym.Name] = sym
	t.funcOrder = append(t.funcOrder, sym.Name)
	t.current().occupied[sym.Name] = true
	return true
}

// ResolveFunction checks the global function registry.
func (t *Table) ResolveFunction(name string) (*Function, bool) {
	f, ok := t.functions[name]
	return f, ok
}

// DefineClass registers sym in the global class registry. Returns false if
// a class with that name already exists globally.
func (t *Table) DefineClass(sym *Class) bool {
	if _, exists := t.classes[sym.Name]; exists {
		return false
	}
	t.classes[sym.Name] = sym
	t.classOrder = append(t.classOrder, sym.Name)
	return true
}

// ResolveClass checks the global class registry.
func (t *Table) ResolveClass(name string) (*Class, bool) {
	c, ok := t.classes[name]
	return c, ok
}

// BaseOf implements types.ClassHierarchy for IsAssignable's inheritance walk.
func (t *Table) BaseOf(class string) (string, bool) {
	c, ok := t.classes[class]
	if !ok || !c.HasBase {
		return "", false
	}
	return c.BaseName, true
}

// ResolveMember looks up name directly on class, then recurses into its
// base chain (member resolution, spec.md §4.2).
func (t *Table) ResolveMember(class *Class, name string) (*Member, bool) {
	for c := class; c != nil; {
		if m, ok := c.Members[name]; ok {
			return m, true
		}
		if !c.HasBase {
			return nil, false
		}
		base, ok := t.ResolveClass(c.BaseName)
		if !ok {
			return nil, false
		}
		c = base
	}
	return nil, false
}

// ExportLines renders the debug dump described in spec.md §6: one line per
// scope frame (insertion order within each), then a functions block, then
// a classes block.
func (t *Table) ExportLines() []string {
	var lines []string

	for i, s := range t.scopes {
		if i == 0 {
			lines = append(lines, "[global]")
		} else {
			lines = append(lines, fmt.Sprintf("[scope_%d]", i))
		}
		for _, name := range s.order {
			v := s.vars[name]
			line := fmt.Sprintf("  var %s: %s", v.Name, types.Display(v.Type))
			if v.IsConst {
				line += " (const)"
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines, "[functions]")
	for _, name := range t.funcOrder {
		f := t.functions[name]
		lines = append(lines, fmt.Sprintf("  func %s(%s) -> %s", f.Name, formatParams(f.Params), types.Display(f.ReturnType)))
	}

	lines = append(lines, "[classes]")
	for _, name := range t.classOrder {
		c := t.classes[name]
		lines = append(lines, fmt.Sprintf("  class %s", c.Name))
		for _, mname := range c.MemberOrder {
			m := c.Members[mname]
			if m.IsMethod {
				lines = append(lines, fmt.Sprintf("    method %s(%s) -> %s", m.Name, formatParams(m.Params), types.Display(m.ReturnType)))
			} else {
				lines = append(lines, fmt.Sprintf("    field %s: %s", m.Name, types.Display(m.Type)))
			}
		}
	}

	return lines
}

func formatParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, types.Display(p.Type))
	}
	return strings.Join(parts, ", ")
}
