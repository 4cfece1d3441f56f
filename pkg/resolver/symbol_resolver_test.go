package resolver_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/env"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/types"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/zsparse"
)

func fn(name, returnType string) *index.MemberSpec {
	return &index.MemberSpec{Name: name, Kind: index.MemberFunction, Type: returnType}
}

var worldIndex = &index.EnvironmentSpec{
	Classes: []*index.ClassSpec{
		{Name: "string", Members: []*index.MemberSpec{fn("length", "int")}},
		{Name: "a.Foo", Members: []*index.MemberSpec{
			{Name: "bar", Type: "a.Bar"},
			{Name: "create", Kind: index.MemberFunction, Type: "a.Foo", Static: true},
		}},
		{Name: "a.Bar", Members: []*index.MemberSpec{{Name: "bat", Type: "int"}, fn("bad", "void"), {Name: "other", Type: "int"}}},
		{Name: "a.I1", Members: []*index.MemberSpec{fn("f", "int")}},
		{Name: "a.I2", Members: []*index.MemberSpec{fn("f", "string")}},
		{Name: "a.B", Interfaces: []string{"a.I1", "a.I2"}},
		{Name: "foo.Base", Members: []*index.MemberSpec{fn("inherited", "void")}},
		{Name: "foo.Bar", Interfaces: []string{"foo.Base"}, Members: []*index.MemberSpec{fn("method", "int")}},
	},
	Globals: []*index.MemberSpec{{Name: "x", Type: "string"}},
	Expands: []*index.ExpandSpec{
		{Receiver: "int", Function: fn("double", "int")},
		{Receiver: "foo.Bar", Function: fn("ext", "void")},
		{Receiver: "foo.Base", Function: fn("baseExt", "void")},
	},
}

func registry(spec *index.EnvironmentSpec) *env.Registry {
	b := env.NewBuilder()
	b.AddIndex(spec)
	return b.Build()
}

// splitCursor removes the '|' marking the cursor and returns its offset.
func splitCursor(t *testing.T, source string) (string, int) {
	t.Helper()
	offset := strings.Index(source, "|")
	if offset < 0 {
		t.Fatalf("no cursor in %q", source)
	}
	return source[:offset] + source[offset+1:], offset
}

func resolveAt(t *testing.T, r symbol.Environment, source string) ([]symbol.Symbol, *unit.Unit) {
	t.Helper()
	src, offset := splitCursor(t, source)
	u := unit.New("/ws", "/ws/scripts/main.zs")
	u.Reset(zsparse.Parse(src))
	resolver.NewDeclarationResolver().Resolve(u)
	return resolver.NewSymbolResolver(r, types.New()).ResolveOffset(offset, u), u
}

func describe(symbols []symbol.Symbol) []string {
	var out []string
	for _, sym := range symbols {
		s := sym.Kind().String() + ":" + sym.Name()
		if !sym.Decl().Valid() {
			s += " (env)"
		}
		out = append(out, s)
	}
	return out
}

func TestResolveAt(t *testing.T) {
	world := registry(worldIndex)

	for name, tc := range map[string]struct {
		source string
		want   []string
	}{
		"local shadows global": {
			source: "function f() {\n\tvar x = 1;\n\t|x;\n}",
			want:   []string{"variable:x"},
		},
		"global": {
			source: "|x;",
			want:   []string{"variable:x (env)"},
		},
		"parameter through nested scope": {
			source: "function f(a as int) {\n\tif (true) {\n\t\t|a;\n\t}\n}",
			want:   []string{"parameter:a"},
		},
		"foreach variable": {
			source: "for item in [1] {\n\t|item;\n}",
			want:   []string{"variable:item"},
		},
		"overload family": {
			source: "function g() {}\nfunction g(a as int) {}\n|g();",
			want:   []string{"function:g", "function:g"},
		},
		"multi-candidate interface members": {
			source: "import a.B;\nvar b as B;\nb.|f();",
			want:   []string{"function:f (env)", "function:f (env)"},
		},
		"parenthesized owner": {
			source: "var b as a.B;\n(b).|f();",
			want:   []string{"function:f (env)", "function:f (env)"},
		},
		"static member through import": {
			source: "import a.Foo;\nFoo.|create();",
			want:   []string{"function:create (env)"},
		},
		"instance member through class name": {
			source: "import a.Foo;\nFoo.|bar;",
		},
		"static member of script class": {
			source: "zenClass K {\n\tstatic function make() as K { return null; }\n\tfunction inst() {}\n}\nK.|make();",
			want:   []string{"function:make"},
		},
		"primitive class members": {
			source: "var s as string = \"\";\ns.|length();",
			want:   []string{"function:length (env)"},
		},
		"expand on primitive": {
			source: "var n as int = 1;\nn.|double();",
			want:   []string{"function:double (env)"},
		},
		"inherited member": {
			source: "import foo.Bar;\nfunction f(x as Bar) { return x.|inherited(); }",
			want:   []string{"function:inherited (env)"},
		},
		"expand member": {
			source: "import foo.Bar;\nfunction f(x as Bar) { return x.|ext(); }",
			want:   []string{"function:ext (env)"},
		},
		"expand of interface": {
			source: "import foo.Bar;\nvar b as Bar;\nb.|baseExt();",
			want:   []string{"function:baseExt (env)"},
		},
		"import segment": {
			source: "import a.|Foo;",
			want:   []string{"class:Foo (env)"},
		},
		"import package segment": {
			source: "import |a.Foo;",
			want:   []string{"package:a (env)"},
		},
		"type annotation": {
			source: "var b as a.|Bar;",
			want:   []string{"class:Bar (env)"},
		},
		"member completion": {
			source: "import a.Foo;\nvar f as Foo;\nf.|",
			want:   []string{"variable:bar (env)", "function:create (env)"},
		},
		"unknown": {
			source: "|nope;",
		},
		"member of unknown": {
			source: "nope.|x;",
		},
		"outside any reference": {
			source: "|\nvar a = 1;",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, u := resolveAt(t, world, tc.source)
			if diff := cmp.Diff(tc.want, describe(got)); diff != "" {
				t.Errorf("(-want +got):\n%s\n%s", diff, u.Tree().Dump())
			}
		})
	}
}

func TestResolveAtTrailingSegment(t *testing.T) {
	r := registry(&index.EnvironmentSpec{
		Classes: []*index.ClassSpec{
			{Name: "a.Foo", Members: []*index.MemberSpec{{Name: "bar", Type: "a.Bar"}}},
			{Name: "a.Bar", Members: []*index.MemberSpec{{Name: "bat", Type: "int"}, fn("bad", "void"), {Name: "other", Type: "int"}}},
		},
		Globals: []*index.MemberSpec{{Name: "foo", Type: "a.Foo"}},
	})

	for name, tc := range map[string]struct {
		source string
		want   []string
	}{
		"prefix of the unfinished segment": {
			source: "foo.bar.ba|",
			want:   []string{"variable:bat (env)", "function:bad (env)"},
		},
		"inside a function body": {
			source: "function f() {\n\tfoo.bar.ba|",
			want:   []string{"variable:bat (env)", "function:bad (env)"},
		},
		"no name yet": {
			source: "foo.bar.|",
			want:   []string{"variable:bat (env)", "function:bad (env)", "variable:other (env)"},
		},
		"exact match wins over prefix": {
			source: "foo.bar.|bat;",
			want:   []string{"variable:bat (env)"},
		},
		"no member with the prefix": {
			source: "foo.bar.zz|",
		},
		"prefix stops at the cursor": {
			source: "foo.bar.ba|dx",
			want:   []string{"variable:bat (env)", "function:bad (env)"},
		},
		"more code on the next line": {
			source: "foo.bar.ba|\nvar y = 1;",
			want:   []string{"variable:bat (env)", "function:bad (env)"},
		},
		"terminated segment is a miss": {
			source: "foo.bar.b|a;\nvar y = 1;",
		},
		"initializer is a miss": {
			source: "var q = foo.bar.|b;",
		},
		"mid-chain segment is a miss": {
			source: "foo.bar.|b.other;",
		},
		"mid-chain segment matches by name": {
			source: "foo.ba|r.other;",
			want:   []string{"variable:bar (env)"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, u := resolveAt(t, r, tc.source)
			if diff := cmp.Diff(tc.want, describe(got)); diff != "" {
				t.Errorf("(-want +got):\n%s\n%s", diff, u.Tree().Dump())
			}
		})
	}
}

func TestResolveAtAmbiguousSegment(t *testing.T) {
	b := env.NewBuilder()
	b.AddPackageMember("a", symbol.NewVariable("dup", symbol.ModStatic, "int"))
	b.AddPackageMember("a", symbol.NewVariable("dup", symbol.ModStatic, "string"))
	b.AddClass(symbol.NewClass("a.Single", []symbol.Symbol{symbol.NewVariable("x", symbol.ModStatic, "int")}))
	r := b.Build()

	for name, tc := range map[string]struct {
		source string
		want   []string
	}{
		"ambiguous segment": {
			source: "import a.|dup.x;",
			want:   []string{"variable:dup (env)", "variable:dup (env)"},
		},
		"after an ambiguous segment": {
			source: "import a.dup.|x;",
		},
		"after a missing segment": {
			source: "import a.none.|x;",
		},
		"after a unique segment": {
			source: "import a.Single.|x;",
			want:   []string{"variable:x (env)"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, _ := resolveAt(t, r, tc.source)
			if diff := cmp.Diff(tc.want, describe(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveEndToEnd(t *testing.T) {
	world := registry(worldIndex)
	bar := world.FindClass("foo.Bar")
	if bar == nil {
		t.Fatal("foo.Bar missing")
	}
	const source = "import foo.Bar;\nfunction f(x as Bar) { return x.method(); }"

	t.Run("type position", func(t *testing.T) {
		got, _ := resolveAt(t, world, strings.Replace(source, "as Bar", "as |Bar", 1))
		if len(got) != 1 {
			t.Fatalf("want one symbol, got %v", got)
		}
		imp, ok := got[0].(*symbol.ImportSymbol)
		if !ok || imp.Name() != "Bar" {
			t.Fatalf("want import Bar, got %v", got[0])
		}
		if targets := imp.Targets(world); len(targets) != 1 || targets[0] != bar {
			t.Errorf("import targets: %v", targets)
		}
	})

	t.Run("member", func(t *testing.T) {
		got, _ := resolveAt(t, world, strings.Replace(source, "x.method", "x.|method", 1))
		want := symbol.Named(bar.DeclaredMembers(), "method")
		if len(got) != 1 || got[0] != want[0] {
			t.Errorf("want %v, got %v", want, got)
		}
	})

	t.Run("receiver", func(t *testing.T) {
		got, u := resolveAt(t, world, strings.Replace(source, "x.method", "|x.method", 1))
		if len(got) != 1 {
			t.Fatalf("want one symbol, got %v", got)
		}
		param, ok := got[0].(*symbol.ParameterSymbol)
		if !ok || u.SymbolOf(param.Decl()) != param {
			t.Errorf("want the declared parameter, got %v", got[0])
		}
	})

	t.Run("resolve class", func(t *testing.T) {
		u := unit.New("/ws", "/ws/scripts/main.zs")
		u.Reset(zsparse.Parse(source))
		resolver.NewDeclarationResolver().Resolve(u)
		node := u.Tree().Enclosing(u.Tree().NodeAt(strings.Index(source, "Bar)")), syntax.KindClassType)
		got := resolver.NewSymbolResolver(world, types.New()).ResolveClass(node, u)
		if len(got) != 1 || got[0] != bar {
			t.Errorf("want foo.Bar, got %v", got)
		}
	})
}

func TestResolveSiblingDeclarations(t *testing.T) {
	for name, tc := range map[string]struct {
		source string
		want   string
	}{
		"after the second": {
			source: "function f() {\n\tvar v = 1;\n\tvar v = 2;\n\t|v;\n}",
			want:   "var v = 2;",
		},
		"between the two": {
			source: "function f() {\n\tvar v = 1;\n\t|v;\n\tvar v = 2;\n}",
			want:   "var v = 1;",
		},
		"in a nested block": {
			source: "function f() {\n\tvar v = 1;\n\tvar v = 2;\n\tif (true) {\n\t\t|v;\n\t}\n}",
			want:   "var v = 2;",
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, u := resolveAt(t, nil, tc.source)
			if len(got) != 1 {
				t.Fatalf("want one symbol, got %v", got)
			}
			span := got[0].Range()
			if text := u.Tree().Source[span.Start:span.End]; text != tc.want {
				t.Errorf("want declaration %q, got %q", tc.want, text)
			}
		})
	}
}

func TestResolveWithoutEnvironment(t *testing.T) {
	got, _ := resolveAt(t, nil, "import a.Foo;\nFoo.|bar();")
	if len(got) != 0 {
		t.Errorf("want no members without an environment, got %v", got)
	}
	got, _ = resolveAt(t, nil, "import a.Foo;\n|Foo;")
	if diff := cmp.Diff([]string{"import:Foo"}, describe(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
