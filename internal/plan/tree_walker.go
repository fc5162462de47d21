package plan

import (
	"fmt"
	"strings"
)

// WalkTree recursively walks the plan tree, calling visitor for each node
func WalkTree(node Node, visitor func(Node) error) error {
	if node == nil {
		return nil
	}

	if err := visitor(node); err != nil {
		return err
	}

	for _, child := range node.Children() {
		if err := WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// PrintTree prints the plan tree with indentation, root first
func PrintTree(node Node) string {
	var sb strings.Builder
	printTreeHelper(node, 0, &sb)
	return sb.String()
}

func printTreeHelper(node Node, depth int, sb *strings.Builder) {
	if node == nil {
		return
	}

	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(Describe(node))
	sb.WriteByte('\n')

	for _, child := range node.Children() {
		printTreeHelper(child, depth+1, sb)
	}
}

// Describe renders one node as a single line
func Describe(node Node) string {
	switch n := node.(type) {
	case *ScanNode:
		return fmt.Sprintf("SCAN %s", n.TableName)
	case *JoinNode:
		left, right := "?", "?"
		if s, ok := n.left.(*ScanNode); ok {
			left = s.TableName
		}
		if s, ok := n.right.(*ScanNode); ok {
			right = s.TableName
		}
		return fmt.Sprintf("JOIN %s ON %s.%s = %s.%s", n.JoinType, left, n.LeftOnCol, right, n.RightOnCol)
	case *FilterNode:
		return fmt.Sprintf("FILTER %s", n.Description)
	case *GroupNode:
		return fmt.Sprintf("GROUP BY %s (COUNT(*), SUM(%s))", n.Column, n.Measure)
	case *HavingNode:
		return fmt.Sprintf("HAVING SUM > %g", n.Threshold)
	case *SortNode:
		dir := "DESC"
		if n.Asc {
			dir = "ASC"
		}
		return fmt.Sprintf("SORT SUM %s", dir)
	case *ProjectNode:
		return fmt.Sprintf("PROJECT %s", strings.Join(n.Projection.Names(), ", "))
	case *LimitNode:
		return fmt.Sprintf("LIMIT %d", n.Count)
	default:
		return node.NodeType()
	}
}

// CountNodes counts the total number of nodes in the tree
func CountNodes(node Node) int {
	if node == nil {
		return 0
	}

	count := 1
	for _, child := range node.Children() {
		count += CountNodes(child)
	}

	return count
}

// Find returns the first node of type T in depth-first order
func Find[T Node](root Node) (T, bool) {
	var found T
	var ok bool
	_ = WalkTree(root, func(n Node) error {
		if t, match := n.(T); match && !ok {
			found, ok = t, true
		}
		return nil
	})
	return found, ok
}
