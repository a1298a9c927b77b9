// Package testutil provides shared test doubles for the translation engine.
package testutil

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MockCall records one request made against the mock provider
type MockCall struct {
	Model       string
	Instruction string
	UserContent string
}

// MockProvider is a scripted provider client. Without a Handler it answers
// translation requests by echoing each input line with a "T:" prefix and
// terminology requests with an empty term list.
type MockProvider struct {
	mu      sync.Mutex
	calls   []MockCall
	Handler func(call MockCall) (string, error)
}

// Complete records the call and returns the scripted response
func (m *MockProvider) Complete(ctx context.Context, model, instruction, userContent string) (string, error) {
	call := MockCall{Model: model, Instruction: instruction, UserContent: userContent}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.Handler != nil {
		return m.Handler(call)
	}
	return DefaultResponse(call)
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// Calls returns a snapshot of all recorded calls
func (m *MockProvider) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// CallCount returns the number of recorded calls
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// IsExtraction reports whether a call is a terminology extraction request
func (c MockCall) IsExtraction() bool {
	return strings.Contains(c.Instruction, "terminology extractor")
}

// DefaultResponse builds the well-formed response for a call: echoed
// translations for translation requests, no terms for extraction requests.
func DefaultResponse(call MockCall) (string, error) {
	if call.IsExtraction() {
		return `{"terms": []}`, nil
	}
	return EchoTranslations(call.UserContent)
}

// EchoTranslations answers a translation payload with "T:"-prefixed copies
// of the input lines, wrapped in the wire contract shape.
func EchoTranslations(userContent string) (string, error) {
	var texts []string
	if err := json.Unmarshal([]byte(userContent), &texts); err != nil {
		return "", err
	}
	translated := make([]string, len(texts))
	for i, text := range texts {
		translated[i] = "T:" + text
	}
	response, err := json.Marshal(map[string][]string{"translations": translated})
	if err != nil {
		return "", err
	}
	return string(response), nil
}
