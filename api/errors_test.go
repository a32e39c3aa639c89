// api/errors_test.go
// Author: momentics <momentics@gmail.com>

package api

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredErrorUnwrap(t *testing.T) {
	e := NewError(CodeBufferOverflow, ErrBufferOverflow)
	if !errors.Is(e, ErrBufferOverflow) {
		t.Error("errors.Is should see through the wrapper")
	}
	if e.Code != CodeBufferOverflow {
		t.Errorf("code = %d", e.Code)
	}
	if e.Error() != ErrBufferOverflow.Error() {
		t.Errorf("message = %q", e.Error())
	}
}

func TestStructuredErrorContext(t *testing.T) {
	e := NewError(CodeStringTooLong, ErrStringTooLong).
		WithContext("declared_len", 500_000).
		WithContext("max", 400_000)
	msg := e.Error()
	if !strings.Contains(msg, "declared_len") {
		t.Errorf("context missing from message: %q", msg)
	}
	if !errors.Is(e, ErrStringTooLong) {
		t.Error("context must not break unwrapping")
	}
}

func TestSentinelsDistinct(t *testing.T) {
	sentinels := []error{
		ErrPositionOutOfBounds, ErrIncrementTooLarge, ErrSizeTooBig,
		ErrBufferOverflow, ErrInsufficientSpace, ErrStringTooLong,
		ErrViewTooLong, ErrWouldWrap,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinels %d and %d are not distinct", i, j)
			}
		}
	}
}
