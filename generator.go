package archsketch

import (
	"context"
	"sync"

	"github.com/deepnoodle-ai/archsketch/schema"
)

// SystemPrompt directs the model to act as an architecture designer and
// answer with the diagram JSON only.
const SystemPrompt = "You are an expert system architecture designer. " +
	"Analyze the user's request and generate a simplified, high-level architecture diagram " +
	"data structure. Only include relevant, major components. " +
	"Do not include any text outside the JSON object."

// Temperature is the sampling temperature used for diagram generation.
const Temperature = 0.2

// ResponseMIMEType is the response type requested from the model.
const ResponseMIMEType = "application/json"

// Generator produces diagrams from natural-language instructions.
// Implementations must be safe for concurrent use.
type Generator interface {
	GenerateDiagram(ctx context.Context, instructions string) (*Generation, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, instructions string) (*Generation, error)

func (f GeneratorFunc) GenerateDiagram(ctx context.Context, instructions string) (*Generation, error) {
	return f(ctx, instructions)
}

var (
	diagramSchemaOnce sync.Once
	diagramSchema     *schema.Schema
)

// DiagramSchema returns the JSON schema the model's output must follow. It is
// derived from the Diagram type and computed once.
func DiagramSchema() *schema.Schema {
	diagramSchemaOnce.Do(func() {
		s, err := schema.Generate(Diagram{})
		if err != nil {
			panic("archsketch: diagram schema: " + err.Error())
		}
		diagramSchema = s
	})
	return diagramSchema
}
