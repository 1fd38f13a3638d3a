package providers

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// MockProvider is a deterministic stand-in for local runs and tests.
type MockProvider struct {
	dim int
}

func NewMockProvider(dim int) *MockProvider {
	if dim <= 0 {
		dim = 1536
	}
	return &MockProvider{dim: dim}
}

func (m *MockProvider) Embed(ctx context.Context, req EmbedRequest) ([][]float32, ProviderInfo, error) {
	_ = ctx
	dim := req.Dimension
	if dim <= 0 {
		dim = m.dim
	}
	vectors := make([][]float32, 0, len(req.Inputs))
	for _, input := range req.Inputs {
		vectors = append(vectors, deterministicVector(input, dim))
	}
	return vectors, ProviderInfo{Name: "mock", Model: fmt.Sprintf("mock-embed-%d", dim), Key: "mock"}, nil
}

func (m *MockProvider) GenerateToolCalls(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}

	var args []byte
	if strings.Contains(strings.ToLower(req.Operation), "qa") {
		args, _ = json.Marshal(map[string]any{
			"answer":            "Deterministic answer based on retrieved context.",
			"followupQuestions": []string{"What metrics were reported?"},
		})
	} else {
		args, _ = json.Marshal(map[string]any{
			"notes": map[string]any{
				"note":        "Deterministic mock note covering the supplied text.",
				"pageNumbers": []int{1},
			},
		})
	}
	return GenerateResponse{ToolCalls: []ToolCall{{Name: req.Tool.Name, Arguments: string(args)}}}, info, nil
}

func deterministicVector(input string, dim int) []float32 {
	vec := make([]float32, dim)
	seed := []byte(input)
	if len(seed) == 0 {
		seed = []byte("empty")
	}
	for i := 0; i < dim; i++ {
		h := sha256.Sum256(append(seed, byte(i%251)))
		u := binary.BigEndian.Uint32(h[:4])
		v := float32(u%2000)/1000.0 - 1.0
		vec[i] = v
	}
	return normalize(vec)
}

func normalize(v []float32) []float32 {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	inv := float32(1.0 / (math.Sqrt(float64(sum)) + 1e-9))
	for i := range v {
		v[i] *= inv
	}
	return v
}
