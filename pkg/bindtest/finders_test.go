package bindtest_test

import (
	"strings"
	"testing"

	"github.com/go-drift/viewbind/pkg/bindings"
	"github.com/go-drift/viewbind/pkg/bindtest"
	"github.com/go-drift/viewbind/pkg/convert"
)

type group struct{ kids []bindings.Node }

func (g *group) Children() []bindings.Node { return g.kids }

func tree() (*group, *bindtest.FakeControl, *bindtest.FakeControl) {
	a := bindtest.NewFakeControl("volume", convert.Float{})
	b := bindtest.NewFakeControl("nickname", convert.Text{})
	return &group{kids: []bindings.Node{a, &group{kids: []bindings.Node{b}}}}, a, b
}

func TestFindByID(t *testing.T) {
	root, _, b := tree()
	r := bindtest.Find(root, bindtest.ByID("nickname"))
	if r.Count() != 1 || r.First() != bindings.Node(b) {
		t.Fatalf("ByID found %v", r.All())
	}
	if r.Adapter() != bindings.Adapter(b) {
		t.Error("Adapter() should return the matched control")
	}
	if bindtest.Find(root, bindtest.ByID("missing")).Exists() {
		t.Error("ByID matched a missing id")
	}
}

func TestFindByType(t *testing.T) {
	root, a, b := tree()
	r := bindtest.Find(root, bindtest.ByType[*bindtest.FakeControl]())
	if r.Count() != 2 || r.All()[0] != bindings.Node(a) || r.All()[1] != bindings.Node(b) {
		t.Errorf("ByType found %v", r.All())
	}
	if n := bindtest.Find(root, bindtest.ByType[*group]()).Count(); n != 2 {
		t.Errorf("ByType[*group] count = %d, want 2", n)
	}
}

func TestFirstPanicsWithDescription(t *testing.T) {
	root, _, _ := tree()
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), `ByID("nope")`) {
			t.Errorf("panic = %v", r)
		}
	}()
	bindtest.Find(root, bindtest.ByID("nope")).First()
}

func TestByPredicate(t *testing.T) {
	root, a, _ := tree()
	f := bindtest.ByPredicate("float controls", func(n bindings.Node) bool {
		c, ok := n.(*bindtest.FakeControl)
		return ok && c.Conv == (convert.Float{})
	})
	if r := bindtest.Find(root, f); r.Count() != 1 || r.First() != bindings.Node(a) {
		t.Errorf("ByPredicate found %v", r.All())
	}
}
