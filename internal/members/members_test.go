package members_test

import (
	"testing"

	"declfix/internal/members"
	"declfix/internal/syntax"
	"declfix/internal/testkit"
)

func names(ms []syntax.Decl) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		if n, ok := m.(syntax.Named); ok {
			out[i] = n.Name()
		} else {
			out[i] = m.Kind().String()
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrderTable(t *testing.T) {
	tests := []struct {
		kind syntax.Kind
		src  string
		want int
	}{
		{syntax.Field, "const int K = 1;", members.ConstField},
		{syntax.Field, "public const int K = 1;", members.ConstField},
		{syntax.Field, "static int x;", members.Field},
		{syntax.Constructor, "C() { }", members.Constructor},
		{syntax.Destructor, "~C() { }", members.Destructor},
		{syntax.Delegate, "delegate void D();", members.Delegate},
		{syntax.Event, "event EventHandler E { add { } remove { } }", members.Event},
		{syntax.EventField, "event EventHandler E;", members.EventField},
		{syntax.Property, "int P { get; }", members.Property},
		{syntax.Indexer, "int this[int i] => i;", members.Indexer},
		{syntax.Method, "void M() { }", members.Method},
		{syntax.ConversionOperator, "static implicit operator int(C c) => 0;", members.ConversionOperator},
		{syntax.Operator, "static C operator +(C a, C b) => a;", members.Operator},
		{syntax.Enum, "enum E { }", members.Enum},
		{syntax.Interface, "interface I { }", members.Interface},
		{syntax.Struct, "struct S { }", members.Struct},
		{syntax.Class, "class N { }", members.Class},
		{syntax.Record, "record R(int X);", members.Class},
		{syntax.Namespace, "namespace N { }", members.Namespace},
		{syntax.IncompleteMember, "public int", members.Incomplete},
	}
	for _, tt := range tests {
		d := testkit.Decl(t, tt.kind, tt.src)
		if got := members.Order(d); got != tt.want {
			t.Fatalf("%s %q: Order = %d, want %d", tt.kind, tt.src, got, tt.want)
		}
	}
}

func TestOrderPanicsOnNonMembers(t *testing.T) {
	for _, k := range []syntax.Kind{syntax.Accessor, syntax.Parameter, syntax.LocalDeclaration, syntax.EnumMember} {
		d := testkit.Decl(t, k, "x")
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", k)
				}
			}()
			members.Order(d)
		}()
	}
}

// сценарий: [method B, method A, field x]
func scenario(t *testing.T) []syntax.Decl {
	return []syntax.Decl{
		testkit.Decl(t, syntax.Method, "void B() { }"),
		testkit.Decl(t, syntax.Method, "void A() { }"),
		testkit.Decl(t, syntax.Field, "int x;"),
	}
}

func TestCompareScenario(t *testing.T) {
	byKind := members.NewComparer(members.ByKind, members.Ordinal)
	ms := scenario(t)
	if byKind.IsListSorted(ms) {
		t.Fatalf("field after methods reported as sorted")
	}
	if got := names(byKind.Sort(ms)); !equal(got, []string{"x", "B", "A"}) {
		t.Fatalf("ByKind sort = %v", got)
	}
	byName := members.NewComparer(members.ByKindThenName, members.Ordinal)
	sorted := byName.Sort(ms)
	if got := names(sorted); !equal(got, []string{"x", "A", "B"}) {
		t.Fatalf("ByKindThenName sort = %v", got)
	}
	if !byName.IsListSorted(sorted) || !byKind.IsListSorted(sorted) {
		t.Fatalf("sorted list fails the gate")
	}
	// вход не меняется
	if got := names(ms); !equal(got, []string{"B", "A", "x"}) {
		t.Fatalf("input reordered: %v", got)
	}
}

func TestUnnamedMembersKeepOrder(t *testing.T) {
	ms := []syntax.Decl{
		testkit.Decl(t, syntax.Operator, "static C operator -(C a) => a;"),
		testkit.Decl(t, syntax.Operator, "static C operator +(C a) => a;"),
		testkit.Decl(t, syntax.Indexer, "int this[string s] => 0;"),
		testkit.Decl(t, syntax.Indexer, "int this[int i] => 0;"),
	}
	c := members.NewComparer(members.ByKindThenName, members.Collate)
	if c.Compare(ms[0], ms[1]) != 0 || c.Compare(ms[2], ms[3]) != 0 {
		t.Fatalf("unnamed members must compare equal")
	}
	got := c.Sort(ms)
	want := []syntax.Decl{ms[2], ms[3], ms[0], ms[1]}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s", i, syntax.Text(got[i]))
		}
	}
}

func TestNameComparison(t *testing.T) {
	ms := []syntax.Decl{
		testkit.Decl(t, syntax.Method, "void beta() { }"),
		testkit.Decl(t, syntax.Method, "void Alpha() { }"),
		testkit.Decl(t, syntax.Method, "void alpha() { }"),
	}
	ordinal := members.NewComparer(members.ByKindThenName, members.Ordinal)
	if got := names(ordinal.Sort(ms)); !equal(got, []string{"Alpha", "alpha", "beta"}) {
		t.Fatalf("ordinal = %v", got)
	}
	coll := members.NewComparer(members.ByKindThenName, members.Collate)
	got := names(coll.Sort(ms))
	if got[2] != "beta" {
		t.Fatalf("collate = %v, beta must sort last", got)
	}
	// оба регистра alpha идут раньше beta, порядок между ними фиксирован
	again := names(coll.Sort([]syntax.Decl{ms[2], ms[1], ms[0]}))
	if !equal(got, again) {
		t.Fatalf("collate depends on input order: %v vs %v", got, again)
	}
}

func TestSortContainer(t *testing.T) {
	class := syntax.NewClass(syntax.Parts{
		Head: testkit.Lex(t, "class C\n{\n"),
		Members: []syntax.Decl{
			testkit.Decl(t, syntax.Method, "    /// b\n    void B() { }\n"),
			testkit.Decl(t, syntax.Field, "    int x;\n"),
		},
		Tail: testkit.Lex(t, "}\n"),
		Name: "C",
	})
	c := members.NewComparer(members.ByKind, members.Ordinal)
	out := c.SortContainer(class)
	want := "class C\n{\n    int x;\n    /// b\n    void B() { }\n}\n"
	if got := syntax.FullText(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if again := c.SortContainer(out); again != out {
		t.Fatalf("sorted container must be returned as is")
	}
}

func TestEnumIsNotSortable(t *testing.T) {
	enum := testkit.Decl(t, syntax.Enum, "enum E { B, A }")
	if members.Sortable(enum) {
		t.Fatalf("enum members keep their declared order")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	members.NewComparer(members.ByKind, members.Ordinal).SortContainer(enum)
}

func TestParseModeAndNames(t *testing.T) {
	if m, err := members.ParseMode("Kind-Then-Name"); err != nil || m != members.ByKindThenName {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if _, err := members.ParseMode("size"); err == nil {
		t.Fatalf("expected error")
	}
	if n, err := members.ParseNames("collate"); err != nil || n != members.Collate {
		t.Fatalf("ParseNames = %v, %v", n, err)
	}
	if _, err := members.ParseNames("locale"); err == nil {
		t.Fatalf("expected error")
	}
}
