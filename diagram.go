package archsketch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Shape is the visual shape of a diagram node.
type Shape string

const (
	ShapeBox     Shape = "box"
	ShapeCircle  Shape = "circle"
	ShapeDiamond Shape = "diamond"
)

// Request is the body accepted by the diagram generation endpoint.
type Request struct {
	Instructions string `json:"instructions"`
}

// Diagram is the structured description of an architecture diagram.
type Diagram struct {
	Nodes []Node `json:"nodes" description:"List of system components (e.g., Load Balancer, Database)."`
	Edges []Edge `json:"edges" description:"List of directed connections between components."`
}

// Node is a system component in the diagram.
type Node struct {
	ID          string `json:"id" description:"Unique short identifier (e.g., 'LB', 'DB')."`
	Name        string `json:"name" description:"Display name for the component."`
	Shape       Shape  `json:"shape,omitempty" enum:"box,circle,diamond" description:"Visual shape of the component (default to 'box')."`
	Description string `json:"description,omitempty" description:"A brief explanation of the component's role."`
}

// Edge is a directed, optionally labeled connection between two nodes.
type Edge struct {
	FromID string `json:"from_id" description:"The 'id' of the source node."`
	ToID   string `json:"to_id" description:"The 'id' of the destination node."`
	Label  string `json:"label,omitempty" description:"Optional label for the connection (e.g., 'HTTP/S', 'Async Queue')."`
}

// Validate checks that node ids are unique and that every edge references a
// declared node. Generators do not call it; callers opt in.
func (d *Diagram) Validate() error {
	ids := make(map[string]struct{}, len(d.Nodes))
	var errs []error
	for i, node := range d.Nodes {
		if node.ID == "" {
			errs = append(errs, fmt.Errorf("node %d has an empty id", i))
			continue
		}
		if _, dup := ids[node.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate node id %q", node.ID))
			continue
		}
		ids[node.ID] = struct{}{}
	}
	for i, edge := range d.Edges {
		if _, ok := ids[edge.FromID]; !ok {
			errs = append(errs, fmt.Errorf("edge %d references unknown source node %q", i, edge.FromID))
		}
		if _, ok := ids[edge.ToID]; !ok {
			errs = append(errs, fmt.Errorf("edge %d references unknown target node %q", i, edge.ToID))
		}
	}
	return errors.Join(errs...)
}

// ErrNoGeneration is reported when a generator succeeds without output.
var ErrNoGeneration = errors.New("generator returned no diagram")

// Generation is the outcome of a successful diagram generation.
type Generation struct {
	// Raw is the model's JSON text, compacted. It is relayed to HTTP
	// callers as is.
	Raw json.RawMessage
	// Diagram is Raw decoded as a Diagram. It is nil when the JSON does not
	// have that shape.
	Diagram *Diagram

	decodeErr error
}

// ParseGeneration parses the model's text response. Any valid JSON value is
// accepted; only text that is not JSON is an error. Decoding into Diagram is
// best effort and never fails the parse.
func ParseGeneration(text string) (*Generation, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(text)); err != nil {
		return nil, fmt.Errorf("invalid JSON in model response: %w", err)
	}
	gen := &Generation{Raw: compact.Bytes()}
	var diagram Diagram
	if err := json.Unmarshal(gen.Raw, &diagram); err != nil {
		gen.decodeErr = err
	} else {
		gen.Diagram = &diagram
	}
	return gen, nil
}

// Validate requires Raw to decode as a Diagram and then runs
// Diagram.Validate.
func (g *Generation) Validate() error {
	if g.Diagram == nil {
		if g.decodeErr != nil {
			return fmt.Errorf("model response is not a diagram: %w", g.decodeErr)
		}
		return errors.New("model response is not a diagram")
	}
	return g.Diagram.Validate()
}
