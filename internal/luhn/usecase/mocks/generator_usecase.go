// Package mocks provides mock implementations for testing HTTP handlers and commands.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/luhnify/internal/luhn/domain"
)

// MockGeneratorUseCase is a mock implementation of GeneratorUseCase for testing.
type MockGeneratorUseCase struct {
	mock.Mock
}

// NewMockGeneratorUseCase creates a mock and registers expectation checks on cleanup.
func NewMockGeneratorUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockGeneratorUseCase {
	m := &MockGeneratorUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method of GeneratorUseCase.
func (m *MockGeneratorUseCase) Generate(
	ctx context.Context,
	template string,
	batchCount int,
) (*domain.Batch, error) {
	args := m.Called(ctx, template, batchCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

// Validate mocks the Validate method of GeneratorUseCase.
func (m *MockGeneratorUseCase) Validate(ctx context.Context, number string) (*domain.Validation, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Validation), args.Error(1)
}
