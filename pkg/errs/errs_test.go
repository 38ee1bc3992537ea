package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewAdapterNotFound("xml")
	assert.Equal(t, `ADAPTER_RESOLUTION: adapter not found: "xml"`, err.Error())
	assert.Equal(t, "xml", err.ID)
}

func TestError_MessageWithCause(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{Code: CodeAdapterResolution, Message: "lookup", Err: cause}
	assert.Equal(t, "ADAPTER_RESOLUTION: lookup: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestPredicates(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"not found", NewAdapterNotFound("x"), IsAdapterResolution},
		{"cannot infer", NewCannotInferAdapter("graph"), IsAdapterResolution},
		{"unsupported", NewUnsupportedCapability("name", struct{}{}), IsUnsupportedCapability},
		{"subscript", NewInvalidSubscript(1.5, "a string"), IsInvalidSubscript},
		{"adapter ref", NewInvalidAdapterReference(42), IsInvalidAdapterReference},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.is(tc.err))

			wrapped := fmt.Errorf("eval: %w", tc.err)
			assert.True(t, tc.is(wrapped), "wrapped errors must still match")
		})
	}
}

func TestPredicates_RejectOtherErrors(t *testing.T) {
	plain := errors.New("plain")
	assert.False(t, IsAdapterResolution(plain))
	assert.False(t, IsUnsupportedCapability(plain))
	assert.False(t, IsInvalidSubscript(plain))
	assert.False(t, IsInvalidAdapterReference(plain))
	assert.Equal(t, Code(""), CodeOf(plain))
	assert.Equal(t, Code(""), CodeOf(nil))

	assert.False(t, IsAdapterResolution(NewInvalidSubscript(1.5, "x")))
}

func TestNewUnsupportedCapability_NamesCapability(t *testing.T) {
	type myAdapter struct{}
	err := NewUnsupportedCapability("adjacent", myAdapter{})
	assert.Equal(t, "adjacent", err.Capability)
	assert.Contains(t, err.Error(), "myAdapter does not implement adjacent")
}

func TestNewUnsupportedCapability_Unnamed(t *testing.T) {
	err := NewUnsupportedCapability("content", nil)
	assert.Equal(t, "content", err.Capability)
	assert.Contains(t, err.Error(), "adapter does not implement content")
	assert.NotContains(t, err.Error(), "<nil>")
}
