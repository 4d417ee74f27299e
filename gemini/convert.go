package gemini

import (
	"strings"

	"github.com/deepnoodle-ai/archsketch"
	"github.com/deepnoodle-ai/archsketch/schema"
	"google.golang.org/genai"
)

// convertSchemaToGenAI converts a schema to the Google GenAI format.
func convertSchemaToGenAI(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             convertType(s.Type),
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrder,
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = convertPropertyToGenAI(prop)
		}
	}
	return out
}

// convertPropertyToGenAI converts a schema property to the Google GenAI format.
func convertPropertyToGenAI(prop *schema.Property) *genai.Schema {
	if prop == nil {
		return nil
	}
	out := &genai.Schema{
		Type:             convertType(prop.Type),
		Description:      prop.Description,
		Enum:             prop.Enum,
		Required:         prop.Required,
		PropertyOrdering: prop.PropertyOrder,
		Nullable:         prop.Nullable,
	}
	if len(prop.Enum) > 0 {
		out.Format = "enum"
	}
	if prop.Items != nil {
		out.Items = convertPropertyToGenAI(prop.Items)
	}
	if prop.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, len(prop.Properties))
		for name, nested := range prop.Properties {
			out.Properties[name] = convertPropertyToGenAI(nested)
		}
	}
	return out
}

// convertType maps JSON schema type names to the upper-case GenAI enum.
func convertType(t schema.SchemaType) genai.Type {
	if t == "" {
		return genai.TypeUnspecified
	}
	return genai.Type(strings.ToUpper(string(t)))
}

// buildGenerateConfig returns the fixed generation config for diagrams.
func buildGenerateConfig(responseSchema *genai.Schema) *genai.GenerateContentConfig {
	temperature := float32(archsketch.Temperature)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(archsketch.SystemPrompt)},
		},
		Temperature:      &temperature,
		ResponseMIMEType: archsketch.ResponseMIMEType,
		ResponseSchema:   responseSchema,
	}
}

// userContents wraps the instructions as a single user turn.
func userContents(instructions string) []*genai.Content {
	return []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(instructions)},
	}}
}

// responseText joins the text parts of the first candidate, skipping
// thought summaries.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", &BlockedError{Reason: string(resp.PromptFeedback.BlockReason)}
		}
		return "", ErrEmptyResponse
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
