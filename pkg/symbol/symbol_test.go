package symbol_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol/mocks"
)

func classEnv(t *testing.T, classes ...*symbol.ClassSymbol) *mocks.Environment {
	env := mocks.NewEnvironment(t)
	byName := make(map[string]*symbol.ClassSymbol)
	for _, cls := range classes {
		byName[cls.QualifiedName()] = cls
	}
	env.
		On("FindClass", mock.AnythingOfType("string")).
		Maybe().
		Return(func(name string) *symbol.ClassSymbol {
			return byName[name]
		})
	return env
}

func TestClassMembers(t *testing.T) {
	i1 := symbol.NewClass("api.I1", []symbol.Symbol{
		symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "int"),
		symbol.NewFunction("g", symbol.KindFunction, symbol.ModNone, "int"),
	})
	i2 := symbol.NewClass("api.I2", []symbol.Symbol{
		symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "string"),
	}, "api.I1")
	b := symbol.NewClass("api.B", []symbol.Symbol{
		symbol.NewVariable("own", symbol.ModNone, "int"),
	}, "api.I1", "api.I2", "api.Missing")

	env := classEnv(t, i1, i2, b)

	for name, tc := range map[string]struct {
		class *symbol.ClassSymbol
		want  []string
	}{
		"no interfaces": {
			class: i1,
			want:  []string{"function:f", "function:g"},
		},
		"own then interfaces": {
			class: i2,
			want:  []string{"function:f", "function:f", "function:g"},
		},
		"each class visited once": {
			class: b,
			want:  []string{"variable:own", "function:f", "function:g", "function:f"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := names(tc.class.Members(env))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

// Both interfaces declare f: the members keep both candidates.
func TestClassMembersMultiCandidate(t *testing.T) {
	fromI1 := symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "int")
	fromI2 := symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "string")
	i1 := symbol.NewClass("I1", []symbol.Symbol{fromI1})
	i2 := symbol.NewClass("I2", []symbol.Symbol{fromI2})
	b := symbol.NewClass("B", nil, "I1", "I2")
	env := classEnv(t, i1, i2, b)

	got := symbol.Named(b.Members(env), "f")
	if len(got) != 2 || got[0] != fromI1 || got[1] != fromI2 {
		t.Errorf("want both candidates in interface order, got %v", got)
	}
}

func TestClassInterfacesCycle(t *testing.T) {
	a := symbol.NewClass("A", []symbol.Symbol{symbol.NewVariable("a", symbol.ModNone, "int")}, "B")
	b := symbol.NewClass("B", []symbol.Symbol{symbol.NewVariable("b", symbol.ModNone, "int")}, "A", "B")
	env := classEnv(t, a, b)

	if diff := cmp.Diff([]string{"variable:a", "variable:b"}, names(a.Members(env))); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
	if got := b.Interfaces(env); len(got) != 1 || got[0] != a {
		t.Errorf("self reference must be dropped, got %v", got)
	}
	if got := a.AllInterfaces(env); len(got) != 1 || got[0] != b {
		t.Errorf("AllInterfaces: got %v", got)
	}
}

func TestDeclaredClassResolvesSupertypeThroughImports(t *testing.T) {
	iface := symbol.NewClass("crafttweaker.item.IIngredient", []symbol.Symbol{
		symbol.NewFunction("matches", symbol.KindFunction, symbol.ModNone, "bool"),
	})
	env := classEnv(t, iface)

	tree := symbol.NewScopeTree()
	root := tree.New(nil, 0)
	root.Add(symbol.NewImport("IIngredient", "crafttweaker.item.IIngredient", 1, nil))
	body := tree.New(root, 2)
	body.Add(symbol.NewFunction("own", symbol.KindFunction, symbol.ModNone, "void"))
	cls := symbol.NewDeclaredClass("Stack", "scripts.test.Stack", 3, nil, body, root, []string{"IIngredient"})

	if diff := cmp.Diff([]string{"function:own", "function:matches"}, names(cls.Members(env))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestImportTargets(t *testing.T) {
	staticA := symbol.NewFunction("max", symbol.KindFunction, symbol.ModStatic, "int")
	staticB := symbol.NewFunction("max", symbol.KindFunction, symbol.ModStatic, "double")
	math := symbol.NewClass("util.Math", []symbol.Symbol{staticA, staticB})
	pkgFn := symbol.NewFunction("helper", symbol.KindFunction, symbol.ModNone, "void")

	root := symbol.NewPackage("")
	util := symbol.NewPackage("util")
	root.AddSubpackage(util)
	util.AddMember(math)
	util.AddMember(pkgFn)

	env := classEnv(t, math)
	env.On("RootPackage").Maybe().Return(root)
	env.On("SymbolsOfPackage", "util").Maybe().Return(util.Members())
	env.On("SymbolsOfPackage", mock.AnythingOfType("string")).Maybe().Return(nil)

	for name, tc := range map[string]struct {
		qualifiedName string
		want          []symbol.Symbol
	}{
		"class": {
			qualifiedName: "util.Math",
			want:          []symbol.Symbol{math},
		},
		"package": {
			qualifiedName: "util",
			want:          []symbol.Symbol{util},
		},
		"static overload family": {
			qualifiedName: "util.Math.max",
			want:          []symbol.Symbol{staticA, staticB},
		},
		"package member": {
			qualifiedName: "util.helper",
			want:          []symbol.Symbol{pkgFn},
		},
		"miss": {
			qualifiedName: "nope.Nothing",
		},
	} {
		t.Run(name, func(t *testing.T) {
			imp := symbol.NewImport("x", tc.qualifiedName, 0, nil)
			got := imp.Targets(env)
			if len(got) != len(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("target %d: want %v, got %v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestModifiers(t *testing.T) {
	for name, tc := range map[string]struct {
		mods symbol.Modifiers
		want string
	}{
		"none":     {mods: symbol.ModNone, want: "none"},
		"static":   {mods: symbol.ModStatic, want: "static"},
		"combined": {mods: symbol.ModGlobal | symbol.ModVal, want: "global|val"},
	} {
		t.Run(name, func(t *testing.T) {
			if got := tc.mods.String(); got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
	if symbol.ModStatic.Has(symbol.ModNone) {
		t.Error("no modifier set is ever reported as present")
	}
}
