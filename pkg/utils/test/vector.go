package testutils

import (
	"context"
	"errors"

	"github.com/papercomputeco/researchpilot/pkg/vector"
)

// ErrMockVector is returned by MockVectorDriver when told to fail.
var ErrMockVector = errors.New("mock vector driver failure")

// MockVectorDriver records documents and returns canned query results.
type MockVectorDriver struct {
	Documents []vector.Document
	Deleted   []string

	// Results is returned by Query, truncated to topK.
	Results []vector.QueryResult

	FailAdd   bool
	FailQuery bool
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		Documents: make([]vector.Document, 0),
		Results:   make([]vector.QueryResult, 0),
	}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	if m.FailAdd {
		return ErrMockVector
	}
	m.Documents = append(m.Documents, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	if m.FailQuery {
		return nil, ErrMockVector
	}
	if len(m.Results) < topK {
		return m.Results, nil
	}
	return m.Results[:topK], nil
}

func (m *MockVectorDriver) Delete(_ context.Context, ids []string) error {
	m.Deleted = append(m.Deleted, ids...)
	return nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}
