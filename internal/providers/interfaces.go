package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

// ToolSchema declares the single function schema a generation call is
// constrained to emit.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCall is one structured invocation emitted by the model. Arguments is
// the raw JSON payload; shape validation belongs to the caller.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type GenerateRequest struct {
	Operation string     `json:"operation"`
	System    string     `json:"system"`
	Prompt    string     `json:"prompt"`
	Tool      ToolSchema `json:"tool"`
}

type GenerateResponse struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

type EmbedRequest struct {
	Operation string   `json:"operation"`
	Inputs    []string `json:"inputs"`
	Dimension int      `json:"dimension"`
}

// ToolCaller runs a tool-constrained generation call and returns the tool
// invocations in emission order. Zero invocations is a valid provider
// response; rejecting it is the caller's concern.
type ToolCaller interface {
	GenerateToolCalls(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error)
}

type Embedder interface {
	Embed(ctx context.Context, req EmbedRequest) ([][]float32, ProviderInfo, error)
}
