package errno

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	t.Run("nil is success", func(t *testing.T) {
		assert.Equal(t, Success, ConvertErr(nil))
	})

	t.Run("wrapped ErrNo keeps its code", func(t *testing.T) {
		err := pkgerrors.Wrap(NotFoundErr.WithMessage("video 42 not found"), "load video")
		got := ConvertErr(err)
		assert.Equal(t, int64(NotFoundErrCode), got.ErrCode)
		assert.Equal(t, "video 42 not found", got.ErrMsg)
	})

	t.Run("plain error becomes service error", func(t *testing.T) {
		got := ConvertErr(errors.New("connection refused"))
		assert.Equal(t, int64(ServiceErrCode), got.ErrCode)
		assert.Equal(t, ServiceErr.ErrMsg, got.ErrMsg)
		assert.NotContains(t, got.ErrMsg, "connection refused")
	})
}

func TestIsKind(t *testing.T) {
	err := pkgerrors.WithMessage(ConflictErr.WithMessage("duplicate like"), "create edge")
	assert.True(t, IsKind(err, ConflictErr))
	assert.False(t, IsKind(err, NotFoundErr))
	assert.False(t, IsKind(errors.New("boom"), ConflictErr))
}
