package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ordnung/internal/errors"
)

func TestFileError(t *testing.T) {
	err := errors.NewFileError("failed to move file", "/data/a.txt", errors.FileOperationFailed, stderrors.New("permission denied"))

	assert.Equal(t, "failed to move file: /data/a.txt: permission denied", err.Error())
	assert.Equal(t, "/data/a.txt", err.Path())
	assert.Equal(t, errors.FileOperationFailed, err.Kind())
}

func TestFileNotFoundCheck(t *testing.T) {
	err := errors.NewFileError("file not found", "/data/b.txt", errors.FileNotFound, nil)
	assert.True(t, errors.IsFileNotFound(err))
	assert.False(t, errors.IsFileNotFound(errors.New("other")))

	wrapped := errors.Wrap(err, "organizing failed")
	assert.True(t, errors.IsFileNotFound(wrapped), "kind checks see through wrapping")
}

func TestConfigError(t *testing.T) {
	err := errors.NewConfigError("invalid configuration", "global_duplicate_handling", errors.InvalidConfig, nil)
	assert.Equal(t, "invalid configuration: global_duplicate_handling", err.Error())
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestStoreError(t *testing.T) {
	err := errors.NewStoreError("failed to store run record", stderrors.New("db closed")).WithOperation("append")
	assert.Contains(t, err.Error(), "operation=append")
	assert.True(t, errors.IsStoreError(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "no-op"))
	assert.Nil(t, errors.Wrapf(nil, "no-op %d", 1))
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := errors.Wrap(inner, "outer")
	assert.Equal(t, inner, errors.Unwrap(err))
	assert.True(t, errors.Is(err, inner))
}
