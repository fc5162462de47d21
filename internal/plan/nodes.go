package plan

import (
	"github.com/leengari/queryviz/internal/domain/data"
	"github.com/leengari/queryviz/internal/domain/stage"
	"github.com/leengari/queryviz/internal/query/operations/join"
	"github.com/leengari/queryviz/internal/query/operations/projection"
)

// Node is the base interface for all logical plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string

	// Step returns the pipeline step whose clause introduces this node
	Step() stage.Step
}

type nodeMeta struct {
	metadata map[string]any
}

func (m *nodeMeta) Metadata() map[string]any {
	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	return m.metadata
}

// unary is the shared shape of single-input nodes
type unary struct {
	nodeMeta
	child Node
}

func (u *unary) Child() Node { return u.child }

func (u *unary) Children() []Node {
	if u.child == nil {
		return nil
	}
	return []Node{u.child}
}

// ScanNode represents a base relation scan (leaf node)
type ScanNode struct {
	nodeMeta
	TableName string
}

func (n *ScanNode) Children() []Node { return nil }
func (n *ScanNode) NodeType() string { return "SCAN" }
func (n *ScanNode) Step() stage.Step { return stage.FromJoin }

// JoinNode represents the JOIN of the two scans. FROM_JOIN shows the full
// outer pre-join; the ON clause narrows it to matched pairs.
type JoinNode struct {
	nodeMeta
	JoinType   join.JoinType
	LeftOnCol  string
	RightOnCol string

	left  Node
	right Node
}

func NewJoinNode(left, right Node, joinType join.JoinType, leftCol, rightCol string) *JoinNode {
	return &JoinNode{
		left:       left,
		right:      right,
		JoinType:   joinType,
		LeftOnCol:  leftCol,
		RightOnCol: rightCol,
	}
}

func (n *JoinNode) Left() Node       { return n.left }
func (n *JoinNode) Right() Node      { return n.right }
func (n *JoinNode) Children() []Node { return []Node{n.left, n.right} }
func (n *JoinNode) NodeType() string { return "JOIN" }

func (n *JoinNode) Step() stage.Step {
	if n.JoinType == join.JoinTypeInner {
		return stage.On
	}
	return stage.FromJoin
}

// FilterNode drops unified rows whose predicate flag is set (WHERE)
type FilterNode struct {
	unary
	Description string
	Keep        func(data.UnifiedRow) bool
}

func NewFilterNode(child Node, description string, keep func(data.UnifiedRow) bool) *FilterNode {
	n := &FilterNode{Description: description, Keep: keep}
	n.child = child
	return n
}

func (n *FilterNode) NodeType() string { return "FILTER" }
func (n *FilterNode) Step() stage.Step { return stage.Where }

// GroupNode partitions rows by Column and aggregates COUNT and SUM of Measure
type GroupNode struct {
	unary
	Column  string
	Measure string
}

func NewGroupNode(child Node, column, measure string) *GroupNode {
	n := &GroupNode{Column: column, Measure: measure}
	n.child = child
	return n
}

func (n *GroupNode) NodeType() string { return "GROUP" }
func (n *GroupNode) Step() stage.Step { return stage.GroupBy }

// HavingNode keeps groups whose sum exceeds Threshold
type HavingNode struct {
	unary
	Threshold float64
}

func NewHavingNode(child Node, threshold float64) *HavingNode {
	n := &HavingNode{Threshold: threshold}
	n.child = child
	return n
}

func (n *HavingNode) NodeType() string { return "HAVING" }
func (n *HavingNode) Step() stage.Step { return stage.Having }

// SortNode stable-sorts groups by their sum
type SortNode struct {
	unary
	Asc bool
}

func NewSortNode(child Node, asc bool) *SortNode {
	n := &SortNode{Asc: asc}
	n.child = child
	return n
}

func (n *SortNode) NodeType() string { return "SORT" }
func (n *SortNode) Step() stage.Step { return stage.OrderBy }

// ProjectNode narrows the column set; rows and order are untouched
type ProjectNode struct {
	unary
	Projection *projection.Projection
}

func NewProjectNode(child Node, proj *projection.Projection) *ProjectNode {
	n := &ProjectNode{Projection: proj}
	n.child = child
	return n
}

func (n *ProjectNode) NodeType() string { return "PROJECT" }
func (n *ProjectNode) Step() stage.Step { return stage.Select }

// LimitNode marks groups past Count as dimmed. They stay in the result so
// positions from ORDER BY remain stable.
type LimitNode struct {
	unary
	Count int
}

func NewLimitNode(child Node, count int) *LimitNode {
	n := &LimitNode{Count: count}
	n.child = child
	return n
}

func (n *LimitNode) NodeType() string { return "LIMIT" }
func (n *LimitNode) Step() stage.Step { return stage.Limit }
