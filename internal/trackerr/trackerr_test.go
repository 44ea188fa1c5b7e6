package trackerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindStorage, KindOf(Storage(errors.New("conn refused"), "query failed")))
	assert.Equal(t, KindFormat, KindOf(Format("no data")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("export run failed: %w", Storage(errors.New("timeout"), "query failed"))

	assert.True(t, IsStorage(err))
	assert.False(t, IsValidation(err))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Storage(cause, "failed to append batch")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to append batch: dial tcp: connection refused", err.Error())
}

func TestValidationMessage(t *testing.T) {
	err := Validation("unknown eventtype %q", "purchase")
	assert.Equal(t, `unknown eventtype "purchase"`, err.Error())
}
