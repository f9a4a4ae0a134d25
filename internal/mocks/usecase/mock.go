// Package mocks provides testify doubles for the usecase interfaces.
package mocks

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

func ret[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}

func register(t *testing.T, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
