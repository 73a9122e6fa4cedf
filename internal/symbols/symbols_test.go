package symbols

import (
	"testing"

	"github.com/cslang/compiscript/internal/types"
)

func TestScopeShadowing(t *testing.T) {
	tbl := New()
	if !tbl.DefineVariable(&Variable{Name: "x", Type: types.Int}) {
		t.Fatal("expected global x to define")
	}

	tbl.PushScope()
	if !tbl.DefineVariable(&Variable{Name: "x", Type: types.Str}) {
		t.Fatal("expected inner x to shadow outer x")
	}
	v, ok := tbl.ResolveVariable("x")
	if !ok || !types.SameType(v.Type, types.Str) {
		t.Fatalf("expected inner scope's x (string) to resolve first, got %v", v)
	}
	tbl.PopScope()

	v, ok = tbl.ResolveVariable("x")
	if !ok || !types.SameType(v.Type, types.Int) {
		t.Fatalf("expected outer x (integer) to resolve after pop, got %v", v)
	}
}

func TestDefineVariableRejectsRedeclaration(t *testing.T) {
	tbl := New()
	tbl.DefineVariable(&Variable{Name: "x", Type: types.Int})
	if tbl.DefineVariable(&Variable{Name: "x", Type: types.Str}) {
		t.Fatal("expected redeclaring x in the same scope to fail")
	}
}

func TestPopScopeNeverDropsGlobal(t *testing.T) {
	tbl := New()
	tbl.PopScope()
	if tbl.Depth() != 1 {
		t.Fatalf("expected popping the global scope to be a no-op, depth = %d", tbl.Depth())
	}
}

func TestResolveMemberWalksBaseChain(t *testing.T) {
	tbl := New()
	animal := &Class{Name: "Animal", Members: map[string]*Member{
		"name": {Name: "name", Type: types.Str},
	}}
	dog := &Class{Name: "Dog", Members: map[string]*Member{}, HasBase: true, BaseName: "Animal"}

	tbl.DefineClass(animal)
	tbl.DefineClass(dog)

	m, ok := tbl.ResolveMember(dog, "name")
	if !ok {
		t.Fatal("expected Dog to inherit Animal's 'name' field")
	}
	if !types.SameType(m.Type, types.Str) {
		t.Fatalf("expected inherited field type string, got %v", m.Type)
	}

	if _, ok := tbl.ResolveMember(dog, "bark"); ok {
		t.Fatal("expected 'bark' to be unresolved on Dog/Animal")
	}
}

func TestBaseOfImplementsClassHierarchy(t *testing.T) {
	tbl := New()
	tbl.DefineClass(&Class{Name: "Animal", Members: map[string]*Member{}})
	tbl.DefineClass(&Class{Name: "Dog", Members: map[string]*Member{}, HasBase: true, BaseName: "Animal"})

	base, ok := tbl.BaseOf("Dog")
	if !ok || base != "Animal" {
		t.Fatalf("BaseOf(Dog) = (%q, %v), want (Animal, true)", base, ok)
	}
	if _, ok := tbl.BaseOf("Animal"); ok {
		t.Fatal("expected Animal (no base) to report ok=false")
	}
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	c := &Class{Name: "Dog", Members: map[string]*Member{}}
	if !c.AddMember(&Member{Name: "name", Type: types.Str}) {
		t.Fatal("expected first AddMember to succeed")
	}
	if c.AddMember(&Member{Name: "name", Type: types.Int}) {
		t.Fatal("expected duplicate member name to fail")
	}
}
