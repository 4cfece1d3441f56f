package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol/mocks"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/zsparse"
)

func resolvedUnit(t *testing.T, path, source string) *unit.Unit {
	t.Helper()
	u := unit.New("/ws", path)
	u.Reset(zsparse.Parse(source))
	resolver.NewDeclarationResolver().Resolve(u)
	return u
}

func topLevel(t *testing.T, u *unit.Unit, name string) symbol.Symbol {
	t.Helper()
	found := symbol.Named(u.TopLevelSymbols(), name)
	if len(found) != 1 {
		t.Fatalf("want one top-level %q, got %v", name, found)
	}
	return found[0]
}

const modelSource = `
zenClass Foo {
	var bar as int;
	function baz(a as string, b as [int]) as string[int] { return null; }
}
var f as Foo;
var xs as Foo[];
var fn as function(int)bool;
var both as Foo & string;
var untyped = 1;
$expand Foo$shout(n as int) as void {}
`

func TestTypeOfDeclared(t *testing.T) {
	u := resolvedUnit(t, "/ws/scripts/a.zs", modelSource)
	m := New()

	for name, tc := range map[string]struct {
		sym  func() symbol.Symbol
		want string
	}{
		"class": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "Foo") },
			want: "scripts.a.Foo",
		},
		"class annotation": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "f") },
			want: "scripts.a.Foo",
		},
		"array annotation": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "xs") },
			want: "scripts.a.Foo[]",
		},
		"function annotation": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "fn") },
			want: "function(int)bool",
		},
		"intersection annotation": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "both") },
			want: "scripts.a.Foo & string",
		},
		"field": {
			sym: func() symbol.Symbol {
				cls := topLevel(t, u, "Foo").(*symbol.ClassSymbol)
				return symbol.Named(cls.DeclaredMembers(), "bar")[0]
			},
			want: "int",
		},
		"method": {
			sym: func() symbol.Symbol {
				cls := topLevel(t, u, "Foo").(*symbol.ClassSymbol)
				return symbol.Named(cls.DeclaredMembers(), "baz")[0]
			},
			want: "function(string,[int])string[int]",
		},
		"expand function skips the receiver": {
			sym:  func() symbol.Symbol { return topLevel(t, u, "shout") },
			want: "function(int)void",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := m.TypeOf(tc.sym(), nil)
			if got == nil {
				t.Fatal("no type")
			}
			if diff := cmp.Diff(tc.want, got.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}

	if got := m.TypeOf(topLevel(t, u, "untyped"), nil); got != nil {
		t.Errorf("unannotated variable: want no type, got %v", got)
	}
	if got := m.ReceiverName(topLevel(t, u, "shout").(*symbol.FunctionSymbol), nil); got != "scripts.a.Foo" {
		t.Errorf("receiver: got %q", got)
	}
}

func TestFromName(t *testing.T) {
	item := symbol.NewClass("crafttweaker.item.IItemStack", nil)
	env := mocks.NewEnvironment(t)
	env.On("FindClass", mock.Anything).Return(func(name string) *symbol.ClassSymbol {
		if name == item.QualifiedName() {
			return item
		}
		return nil
	}).Maybe()

	m := New()
	for name, tc := range map[string]struct {
		name string
		want string
	}{
		"primitive":    {name: "int", want: "int"},
		"class":        {name: "crafttweaker.item.IItemStack", want: "crafttweaker.item.IItemStack"},
		"array":        {name: "crafttweaker.item.IItemStack[]", want: "crafttweaker.item.IItemStack[]"},
		"list":         {name: "[string]", want: "[string]"},
		"map":          {name: "int[string]", want: "int[string]"},
		"nested":       {name: "[int][]", want: "[int][]"},
		"intersection": {name: "int & string", want: "int & string"},
		"unknown elem": {name: "Missing[]", want: "any[]"},
	} {
		t.Run(name, func(t *testing.T) {
			got := m.FromName(tc.name, env)
			if got == nil {
				t.Fatal("no type")
			}
			if diff := cmp.Diff(tc.want, got.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}

	if got := m.FromName("Missing", env); got != nil {
		t.Errorf("unknown class: want nil, got %v", got)
	}
	if got := m.FromName("", env); got != nil {
		t.Errorf("empty: want nil, got %v", got)
	}
}

func TestMembersOf(t *testing.T) {
	length := symbol.NewFunction("length", symbol.KindFunction, symbol.ModNone, "int")
	str := symbol.NewClass("string", []symbol.Symbol{length})
	amount := symbol.NewVariable("amount", symbol.ModNone, "int")
	iface := symbol.NewClass("crafttweaker.item.IIngredient", []symbol.Symbol{amount})
	name := symbol.NewVariable("name", symbol.ModNone, "string")
	item := symbol.NewClass("crafttweaker.item.IItemStack", []symbol.Symbol{name}, iface.QualifiedName())
	classes := map[string]*symbol.ClassSymbol{
		str.QualifiedName():   str,
		iface.QualifiedName(): iface,
		item.QualifiedName():  item,
	}
	env := mocks.NewEnvironment(t)
	env.On("FindClass", mock.Anything).Return(func(name string) *symbol.ClassSymbol {
		return classes[name]
	}).Maybe()

	m := New()
	for tn, tc := range map[string]struct {
		t    symbol.Type
		want []string
	}{
		"degenerate": {},
		"class includes interfaces": {
			t:    &Class{Symbol: item},
			want: []string{"name", "amount"},
		},
		"primitive uses its class": {
			t:    &Primitive{Name: "string"},
			want: []string{"length"},
		},
		"primitive without class": {
			t: &Primitive{Name: "int"},
		},
		"intersection": {
			t:    &Intersection{Types: []symbol.Type{&Primitive{Name: "string"}, &Class{Symbol: iface}}},
			want: []string{"length", "amount"},
		},
		"array": {
			t: &Array{Elem: &Primitive{Name: "string"}},
		},
	} {
		t.Run(tn, func(t *testing.T) {
			var got []string
			for _, sym := range m.MembersOf(tc.t, env) {
				got = append(got, sym.Name())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandMembersOf(t *testing.T) {
	iface := symbol.NewClass("crafttweaker.item.IIngredient", nil)
	item := symbol.NewClass("crafttweaker.item.IItemStack", nil, iface.QualifiedName())
	onItem := symbol.NewExpandFunction(item.QualifiedName(), "onItem", "void")
	onIngredient := symbol.NewExpandFunction(iface.QualifiedName(), "onIngredient", "void")
	onInt := symbol.NewExpandFunction("int", "onInt", "void")
	expands := map[string][]symbol.Symbol{
		item.QualifiedName():  {onItem},
		iface.QualifiedName(): {onIngredient},
		"int":                 {onInt},
	}

	env := mocks.NewEnvironment(t)
	env.On("FindClass", iface.QualifiedName()).Return(iface).Maybe()
	env.On("ExpandFunctions", mock.Anything).Return(func(name string) []symbol.Symbol {
		return expands[name]
	}).Maybe()

	m := New()
	for name, tc := range map[string]struct {
		t    symbol.Type
		want []string
	}{
		"class and interfaces": {
			t:    &Class{Symbol: item},
			want: []string{"onItem", "onIngredient"},
		},
		"primitive": {
			t:    &Primitive{Name: "int"},
			want: []string{"onInt"},
		},
		"unregistered": {
			t: &Primitive{Name: "string"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			var got []string
			for _, sym := range m.ExpandMembersOf(tc.t, env) {
				got = append(got, sym.Name())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}

	if got := m.ExpandMembersOf(&Primitive{Name: "int"}, nil); got != nil {
		t.Errorf("nil environment: got %v", got)
	}
}
