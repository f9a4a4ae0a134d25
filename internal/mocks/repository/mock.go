// Package mocks provides testify doubles for the repository interfaces.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// ret returns the i-th return value as T, or T's zero value when the value is nil.
func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
