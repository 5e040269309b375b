package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	err := New(ErrIO, "cannot open input").
		WithContext("path", "a.txt").
		WithContext("mode", "read")

	assert.Equal(t, "[IO] cannot open input | context: mode=read, path=a.txt", err.Error())
}

func TestError_FormatWithCause(t *testing.T) {
	err := WrapError(os.ErrNotExist, ErrIO, "cannot open input")
	assert.Equal(t, "[IO] cannot open input | cause: file does not exist", err.Error())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMalformedTable_Line(t *testing.T) {
	err := MalformedTable(3, "column mismatch")
	assert.Equal(t, 3, err.Line())
	assert.Contains(t, err.Error(), "line=3")
	assert.True(t, IsErrorType(err, ErrMalformedTable))
}

func TestIsErrorType_Wrapped(t *testing.T) {
	inner := New(ErrEncoding, "unknown encoding")
	wrapped := fmt.Errorf("startup: %w", inner)

	assert.True(t, IsErrorType(wrapped, ErrEncoding))
	assert.False(t, IsErrorType(wrapped, ErrIO))
	assert.False(t, IsErrorType(errors.New("plain"), ErrIO))
}

func TestChain(t *testing.T) {
	root := errors.New("root")
	mid := WrapError(root, ErrIO, "mid")
	top := fmt.Errorf("top: %w", mid)

	chain := Chain(top)
	assert.Len(t, chain, 3)
	assert.Equal(t, root, chain[2])
}

func TestAdvice(t *testing.T) {
	assert.Contains(t, Advice(New(ErrEncoding, "x")), "--list-encodings")
	assert.Contains(t, Advice(errors.New("x")), "--verbose")
}
