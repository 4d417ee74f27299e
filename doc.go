// Package archsketch turns a free-text description of a software system into
// a structured architecture diagram.
//
// The core types are:
//
//   - [Request] is the inbound instruction text.
//   - [Diagram], [Node] and [Edge] describe the generated diagram.
//   - [Generator] produces a [Generation] from instructions. The Gemini
//     implementation lives in [github.com/deepnoodle-ai/archsketch/gemini].
//
// The output shape handed to the model is derived from the Go types by
// [DiagramSchema]; the struct tags in this package drive both decoding and
// the model's response schema.
//
// # Quick Start
//
//	gen, _ := gemini.New(ctx)
//	result, _ := gen.GenerateDiagram(ctx, "A web app with a database and a cache")
//	fmt.Println(string(result.Raw))
//
// The HTTP surface is in [github.com/deepnoodle-ai/archsketch/server].
package archsketch
