package adferrors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	err := New(KindInvalidInput, "stats.Decide", "negative sample size")
	assert.Equal(t, "stats.Decide: invalid_input: negative sample size", err.Error())

	wrapped := Wrap(io.ErrUnexpectedEOF, KindData, "tables.DecodeJSON", "decode document")
	assert.Equal(t, "tables.DecodeJSON: data: decode document: unexpected EOF", wrapped.Error())

	noOp := New(KindConfig, "", "missing path")
	assert.Equal(t, "config: missing path", noOp.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, KindFile, "op", "msg"))
}

func TestIsKind(t *testing.T) {
	base := InvalidInput("lookup.NewTable", "statistics must be sorted")
	wrapped := fmt.Errorf("load: %w", base)

	assert.True(t, IsInvalidInput(base))
	assert.True(t, IsInvalidInput(wrapped))
	assert.False(t, IsKind(wrapped, KindData))
	assert.False(t, IsInvalidInput(errors.New("plain")))
	assert.False(t, IsInvalidInput(nil))

	chained := Wrap(base, KindFile, "tables.Load", "read tables")
	assert.True(t, IsKind(chained, KindFile))
	assert.True(t, IsInvalidInput(chained))
	assert.ErrorIs(t, chained, base)
}

func TestWithDetail(t *testing.T) {
	err := Newf(KindInvalidInput, "op", "row %d", 3).WithDetail("row", 3)
	require.NotNil(t, err.Details)
	assert.Equal(t, 3, err.Details["row"])
	assert.Equal(t, "row 3", err.Message)
}
