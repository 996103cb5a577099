package did

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := NewMissingSignatureError("did:corda:tcn:x#keys-1")

	assert.True(t, errors.Is(err, ErrMissingSignature))
	assert.False(t, errors.Is(err, ErrInvalidSignature))

	wrapped := fmt.Errorf("validate: %w", err)
	assert.True(t, errors.Is(wrapped, ErrMissingSignature))
}

func TestError_Messages(t *testing.T) {
	assert.Equal(t, "malformed publicKey.id", NewFormatError("publicKey.id").Error())
	assert.Equal(t, "instruction action mismatch: expected update, got create",
		NewActionMismatchError("update", "create").Error())
	assert.Contains(t, NewInvalidSignatureError("k2").Error(), "k2")
	assert.Contains(t, NewUnsupportedSuiteError("Foo2020").Error(), "Foo2020")
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("outer: %w", NewKeyRotationIntegrityError()))
	assert.True(t, ok)
	assert.Equal(t, KindKeyRotationIntegrity, kind)
	assert.Equal(t, "KEY_ROTATION_INTEGRITY", kind.String())

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
