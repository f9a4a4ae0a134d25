package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	err := Wrap(&codedError{code: "ORDER_NOT_FOUND"}, "load order")

	coded, ok := AsType[*codedError](err)
	assert.True(t, ok)
	assert.Equal(t, "ORDER_NOT_FOUND", coded.code)

	_, ok = AsType[*codedError](New("plain"))
	assert.False(t, ok)
}

func TestIsAny(t *testing.T) {
	errA := New("a")
	errB := New("b")

	assert.True(t, IsAny(WithStack(errB), errA, errB))
	assert.False(t, IsAny(New("c"), errA, errB))
	assert.False(t, IsAny(errA))
}

func TestWrapKeepsMessageChain(t *testing.T) {
	err := Wrapf(New("connection refused"), "publish %s", "order.placed")

	assert.Equal(t, "publish order.placed: connection refused", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
	assert.Nil(t, Wrap(nil, "ignored"))
}
