package plugin

import (
	"reflect"
	"testing"

	"nvcfg/internal/diag"
	"nvcfg/internal/model"
)

func decl(name string, deps ...string) model.PluginDecl {
	return model.PluginDecl{Name: name, Dependencies: deps, SourceFile: "init.lua"}
}

func fileOf(decls ...model.PluginDecl) *model.File {
	return &model.File{Path: "init.lua", Plugins: decls}
}

func resolveAll(t *testing.T, files ...*model.File) (Resolution, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	rep := diag.NewBagReporter(bag)
	reg := BuildRegistry(files, rep)
	g := BuildGraph(reg, rep)
	return Resolve(g, rep), bag
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestResolveDependencyFirst(t *testing.T) {
	res, bag := resolveAll(t, fileOf(decl("a", "b"), decl("b")))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := []string{"b", "a"}
	if !reflect.DeepEqual(res.Order, want) {
		t.Fatalf("order = %v, want %v", res.Order, want)
	}
}

func TestResolveTieBreakByName(t *testing.T) {
	res, _ := resolveAll(t, fileOf(decl("c"), decl("a"), decl("b")))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(res.Order, want) {
		t.Fatalf("order = %v, want %v", res.Order, want)
	}
	if len(res.Batches) != 1 || !reflect.DeepEqual(res.Batches[0], want) {
		t.Fatalf("batches = %v", res.Batches)
	}
}

func TestResolveDiamond(t *testing.T) {
	// d depends on b and c, both depend on a
	res, bag := resolveAll(t, fileOf(
		decl("d", "b", "c"),
		decl("b", "a"),
		decl("c", "a"),
		decl("a"),
	))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(res.Order, want) {
		t.Fatalf("order = %v, want %v", res.Order, want)
	}
}

func TestResolveCyclePair(t *testing.T) {
	res, bag := resolveAll(t, fileOf(decl("a", "b"), decl("b", "a")))
	if res.Order != nil {
		t.Fatalf("order = %v, want none", res.Order)
	}
	if len(res.Cycles) != 1 || !reflect.DeepEqual(res.Cycles[0], []string{"a", "b"}) {
		t.Fatalf("cycles = %v", res.Cycles)
	}
	if !hasCode(bag, diag.DepCyclicDependency) {
		t.Fatalf("missing cycle diagnostic: %+v", bag.Items())
	}
	var msg string
	for _, d := range bag.Items() {
		if d.Code == diag.DepCyclicDependency {
			msg = d.Message
		}
	}
	if msg != "dependency cycle: a -> b -> a" {
		t.Fatalf("message = %q", msg)
	}
}

func TestResolveCycleTriple(t *testing.T) {
	res, _ := resolveAll(t, fileOf(decl("a", "b"), decl("b", "c"), decl("c", "a")))
	if res.Order != nil {
		t.Fatalf("order = %v, want none", res.Order)
	}
	if len(res.Cycles) != 1 || !reflect.DeepEqual(res.Cycles[0], []string{"a", "b", "c"}) {
		t.Fatalf("cycles = %v", res.Cycles)
	}
}

func TestDuplicateKeepsFirst(t *testing.T) {
	bag := diag.NewBag(64)
	rep := diag.NewBagReporter(bag)
	reg := BuildRegistry([]*model.File{
		fileOf(decl("x", "a"), decl("a")),
		fileOf(decl("x", "b")),
	}, rep)
	if reg.Len() != 2 {
		t.Fatalf("len = %d, want 2", reg.Len())
	}
	d, ok := reg.Lookup("x")
	if !ok || len(d.Dependencies) != 1 || d.Dependencies[0] != "a" {
		t.Fatalf("lookup x = %+v", d)
	}
	if !hasCode(bag, diag.SemaDuplicatePlugin) {
		t.Fatalf("missing duplicate diagnostic: %+v", bag.Items())
	}
	if bag.HasErrors() {
		t.Fatalf("duplicate should be a warning: %+v", bag.Items())
	}
}

func TestUnresolvedDependencyOmitsEdge(t *testing.T) {
	res, bag := resolveAll(t, fileOf(decl("a", "ghost"), decl("b")))
	if !hasCode(bag, diag.DepUnresolvedDependency) {
		t.Fatalf("missing unresolved diagnostic: %+v", bag.Items())
	}
	if bag.HasErrors() {
		t.Fatalf("unresolved dependency should be a warning: %+v", bag.Items())
	}
	// resolution proceeds; ghost never enters the order
	want := []string{"a", "b"}
	if !reflect.DeepEqual(res.Order, want) {
		t.Fatalf("order = %v, want %v", res.Order, want)
	}
}

func TestSelfDependency(t *testing.T) {
	res, bag := resolveAll(t, fileOf(decl("a", "a")))
	if !hasCode(bag, diag.DepSelfDependency) {
		t.Fatalf("missing self-dependency diagnostic: %+v", bag.Items())
	}
	want := []string{"a"}
	if !reflect.DeepEqual(res.Order, want) {
		t.Fatalf("order = %v, want %v", res.Order, want)
	}
}

func TestDependents(t *testing.T) {
	bag := diag.NewBag(64)
	rep := diag.NewBagReporter(bag)
	reg := BuildRegistry([]*model.File{fileOf(decl("a", "b"), decl("c", "b"), decl("b"))}, rep)
	g := BuildGraph(reg, rep)
	got := g.Dependents("b")
	if !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("dependents = %v", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	forward := fileOf(decl("a", "p"), decl("b", "p"), decl("p"))
	reversed := fileOf(decl("p"), decl("b", "p"), decl("a", "p"))
	r1, _ := resolveAll(t, forward)
	r2, _ := resolveAll(t, reversed)
	if !reflect.DeepEqual(r1.Order, r2.Order) {
		t.Fatalf("orders differ: %v vs %v", r1.Order, r2.Order)
	}
}
