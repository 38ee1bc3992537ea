// Package plan encodes rpath expressions as declarative step lists.
//
// A plan is the data form of a builder chain. The YAML plan
//
//	steps:
//	  - {op: child, name: library}
//	  - {op: child, name: book}
//	  - {op: where, where: {lang: en}}
//	  - {op: attr, name: id}
//
// builds root.Child("library").Child("book").Where({lang: en}).Attr("id").
// Steps follow the same forwarding rules as the expression API, so child,
// adjacent, attr and content on a vertex array apply to its first vertex.
package plan

import (
	"fmt"

	"github.com/roach88/rpath/pkg/expr"
)

// Op names a step.
type Op string

const (
	OpAdjacent Op = "adjacent"
	OpNamed    Op = "named"
	OpChild    Op = "child"
	OpAt       Op = "at"
	OpWhere    Op = "where"
	OpAttr     Op = "attr"
	OpContent  Op = "content"
)

// Step is one operation applied to the expression built so far.
type Step struct {
	Op    Op             `yaml:"op" json:"op"`
	Name  string         `yaml:"name,omitempty" json:"name,omitempty"`
	Index int            `yaml:"index,omitempty" json:"index,omitempty"`
	Where map[string]any `yaml:"where,omitempty" json:"where,omitempty"`
}

// StepError reports a step that cannot be applied.
type StepError struct {
	Index   int
	Op      Op
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %s", e.Index, e.Op, e.Message)
}

// Build applies steps to a new Root.
func Build(steps []Step) (expr.Expression, error) {
	var current expr.Expression = expr.NewRoot()
	for i, step := range steps {
		next, err := apply(current, step)
		if err != nil {
			return nil, &StepError{Index: i, Op: step.Op, Message: err.Error()}
		}
		current = next
	}
	return current, nil
}

func apply(current expr.Expression, step Step) (expr.Expression, error) {
	switch step.Op {
	case OpChild, OpNamed, OpAttr:
		if step.Name == "" {
			return nil, fmt.Errorf("name is required")
		}
	case OpAdjacent, OpAt, OpWhere, OpContent:
	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}

	switch e := current.(type) {
	case expr.VertexExpression:
		switch step.Op {
		case OpAdjacent:
			return e.Adjacent(), nil
		case OpChild:
			return e.Child(step.Name), nil
		case OpAttr:
			return e.Attr(step.Name), nil
		case OpContent:
			return e.Content(), nil
		}
		return nil, fmt.Errorf("not applicable to vertex %s", e)

	case expr.VertexArrayExpression:
		switch step.Op {
		case OpAdjacent:
			return e.Adjacent(), nil
		case OpNamed:
			return e.Named(step.Name), nil
		case OpChild:
			return e.Child(step.Name), nil
		case OpAt:
			return e.At(step.Index), nil
		case OpWhere:
			return e.Where(expr.Conditions(step.Where)), nil
		case OpAttr:
			return e.Attr(step.Name), nil
		case OpContent:
			return e.Content(), nil
		}
	}
	return nil, fmt.Errorf("nothing can follow scalar %s", current)
}

// FromExpression returns the steps that rebuild e. Every node maps to one
// step, so forwarded operations appear with their implicit "at 0" step.
// A Where built from a selector function cannot be encoded.
func FromExpression(e expr.Expression) ([]Step, error) {
	chain := expr.Chain(e)
	steps := make([]Step, 0, len(chain)-1)

	for _, n := range chain[1:] {
		switch node := n.(type) {
		case *expr.Adjacent:
			steps = append(steps, Step{Op: OpAdjacent})
		case *expr.Named:
			steps = append(steps, Step{Op: OpNamed, Name: node.Name()})
		case *expr.At:
			steps = append(steps, Step{Op: OpAt, Index: node.Index()})
		case *expr.Where:
			if node.HasSelector() {
				return nil, fmt.Errorf("%s: selector functions cannot be encoded", node)
			}
			steps = append(steps, Step{Op: OpWhere, Where: map[string]any(node.Conditions())})
		case *expr.Attribute:
			steps = append(steps, Step{Op: OpAttr, Name: node.Name()})
		case *expr.Content:
			steps = append(steps, Step{Op: OpContent})
		default:
			return nil, fmt.Errorf("unexpected node %T", n)
		}
	}
	return steps, nil
}
