package ecs

import "time"

type point struct{ X, Y int }

func (*point) ComponentName() ComponentName { return "point" }

type matrix struct{ A, B, C, D int }

func (*matrix) ComponentName() ComponentName { return "matrix" }

type tag struct{ Label string }

func (*tag) ComponentName() ComponentName { return "tag" }

var (
	pointNode  = NewNodeType("pointNode", NameOf[*point]())
	matrixNode = NewNodeType("matrixNode", NameOf[*point](), NameOf[*matrix]())
)

// recordSystem appends its id to a shared log on every update.
type recordSystem struct {
	id      int
	log     *[]int
	added   int
	removed int
	onTick  func(dt time.Duration)
}

func (s *recordSystem) AddToEngine(*Engine)      { s.added++ }
func (s *recordSystem) RemoveFromEngine(*Engine) { s.removed++ }
func (s *recordSystem) Update(dt time.Duration) {
	if s.log != nil {
		*s.log = append(*s.log, s.id)
	}
	if s.onTick != nil {
		s.onTick(dt)
	}
}

// otherSystem is a distinct System type for FindSystem.
type otherSystem struct{ recordSystem }

func listNodes(l *NodeList, count int) []*Node {
	nodes := make([]*Node, count)
	for i := range nodes {
		nodes[i] = newNode(nil)
		l.Add(nodes[i])
	}
	return nodes
}

func sameOrder(l *NodeList, want []*Node) bool {
	got := l.Slice()
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	// walk back too, so previous links are checked
	i := len(want) - 1
	for n := l.Tail(); n != nil; n = n.Previous() {
		if i < 0 || n != want[i] {
			return false
		}
		i--
	}
	return i == -1 && (len(want) == 0 || l.Head() == want[0])
}
