package archsketch

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/archsketch/schema"
	"github.com/deepnoodle-ai/wonton/assert"
	tassert "github.com/stretchr/testify/assert"
)

func TestDiagramSchemaShape(t *testing.T) {
	s := DiagramSchema()
	assert.Equal(t, schema.Object, s.Type)
	assert.Equal(t, []string{"nodes", "edges"}, s.Required)
	assert.Equal(t, []string{"nodes", "edges"}, s.PropertyOrder)

	nodes := s.Properties["nodes"]
	assert.Equal(t, schema.Array, nodes.Type)
	assert.Equal(t, "List of system components (e.g., Load Balancer, Database).", nodes.Description)
	node := nodes.Items
	assert.NotNil(t, node)
	assert.Equal(t, schema.Object, node.Type)
	assert.Equal(t, []string{"id", "name"}, node.Required)
	assert.Equal(t, []string{"id", "name", "shape", "description"}, node.PropertyOrder)
	assert.Equal(t, []string{"box", "circle", "diamond"}, node.Properties["shape"].Enum)
	assert.Equal(t, schema.String, node.Properties["shape"].Type)

	edges := s.Properties["edges"]
	assert.Equal(t, schema.Array, edges.Type)
	edge := edges.Items
	assert.NotNil(t, edge)
	assert.Equal(t, []string{"from_id", "to_id"}, edge.Required)
	assert.Equal(t, "The 'id' of the source node.", edge.Properties["from_id"].Description)
}

func TestDiagramSchemaIsShared(t *testing.T) {
	assert.True(t, DiagramSchema() == DiagramSchema())
}

func TestParseGeneration(t *testing.T) {
	text := `{
  "nodes": [{"id": "WEB", "name": "Web App"}, {"id": "DB", "name": "Database", "shape": "circle"}],
  "edges": [{"from_id": "WEB", "to_id": "DB", "label": "SQL"}]
}`
	gen, err := ParseGeneration(text)
	assert.NoError(t, err)
	assert.Len(t, gen.Diagram.Nodes, 2)
	assert.Equal(t, Shape(""), gen.Diagram.Nodes[0].Shape)
	assert.Equal(t, ShapeCircle, gen.Diagram.Nodes[1].Shape)
	assert.Equal(t, "SQL", gen.Diagram.Edges[0].Label)
	tassert.JSONEq(t, text, string(gen.Raw))
	assert.Equal(t,
		`{"nodes":[{"id":"WEB","name":"Web App"},{"id":"DB","name":"Database","shape":"circle"}],"edges":[{"from_id":"WEB","to_id":"DB","label":"SQL"}]}`,
		string(gen.Raw))
}

func TestParseGenerationKeepsUnknownFields(t *testing.T) {
	text := `{"nodes":[],"edges":[],"title":"extra"}`
	gen, err := ParseGeneration(text)
	assert.NoError(t, err)
	assert.Equal(t, text, string(gen.Raw))
}

func TestParseGenerationOffSchemaJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"numeric id", `{"nodes": [{"id": 1, "name": "Web"}], "edges": []}`, `{"nodes":[{"id":1,"name":"Web"}],"edges":[]}`},
		{"numeric label", `{"nodes": [], "edges": [{"from_id": "A", "to_id": "B", "label": 7}]}`, `{"nodes":[],"edges":[{"from_id":"A","to_id":"B","label":7}]}`},
		{"nodes as string", `{"nodes": "WEB", "edges": []}`, `{"nodes":"WEB","edges":[]}`},
		{"array", `[1, 2]`, `[1,2]`},
		{"string", `"just text"`, `"just text"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := ParseGeneration(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(gen.Raw))
			assert.Nil(t, gen.Diagram)

			err = gen.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "model response is not a diagram")
		})
	}
}

func TestParseGenerationErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"prose", "Here is your diagram: ..."},
		{"truncated", `{"nodes": [`},
		{"trailing text", `{"nodes": [], "edges": []} done`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := ParseGeneration(tt.text)
			assert.Error(t, err)
			assert.Nil(t, gen)
			assert.Contains(t, err.Error(), "invalid JSON in model response")
		})
	}
}

func TestGenerationValidate(t *testing.T) {
	gen, err := ParseGeneration(`{"nodes":[{"id":"A","name":"A"}],"edges":[{"from_id":"A","to_id":"A"}]}`)
	assert.NoError(t, err)
	assert.NoError(t, gen.Validate())

	gen, err = ParseGeneration(`{"nodes":[{"id":"A","name":"A"}],"edges":[{"from_id":"A","to_id":"B"}]}`)
	assert.NoError(t, err)
	assert.NotNil(t, gen.Diagram)
	assert.Contains(t, gen.Validate().Error(), `unknown target node "B"`)
}

func TestDiagramValidate(t *testing.T) {
	valid := &Diagram{
		Nodes: []Node{{ID: "LB", Name: "Load Balancer"}, {ID: "API", Name: "API"}},
		Edges: []Edge{{FromID: "LB", ToID: "API"}},
	}
	assert.NoError(t, valid.Validate())
	assert.NoError(t, (&Diagram{}).Validate())

	dangling := &Diagram{
		Nodes: []Node{{ID: "LB", Name: "Load Balancer"}},
		Edges: []Edge{{FromID: "LB", ToID: "DB"}},
	}
	err := dangling.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `edge 0 references unknown target node "DB"`)

	dup := &Diagram{
		Nodes: []Node{{ID: "DB", Name: "Primary"}, {ID: "DB", Name: "Replica"}, {Name: "Anonymous"}},
	}
	err = dup.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate node id "DB"`)
	assert.Contains(t, err.Error(), "node 2 has an empty id")
}

func TestGeneratorFunc(t *testing.T) {
	var got string
	var g Generator = GeneratorFunc(func(ctx context.Context, instructions string) (*Generation, error) {
		got = instructions
		return nil, errors.New("unavailable")
	})
	_, err := g.GenerateDiagram(context.Background(), "a queue")
	assert.Error(t, err)
	assert.Equal(t, "a queue", got)
}
