package versionstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionLogNext(t *testing.T) {
	log := VersionLog{"a": 4}
	assert.Equal(t, 5, log.Next("a"))
	assert.Equal(t, 1, log.Next("unseen"))
}

func TestVersionLogValidate(t *testing.T) {
	assert.NoError(t, VersionLog{}.Validate())
	assert.NoError(t, VersionLog{"a": 1, "b": 99}.Validate())
	assert.Error(t, VersionLog{"": 1}.Validate())
	assert.Error(t, VersionLog{"a": 0}.Validate())
	assert.Error(t, VersionLog{"a": -3}.Validate())
	assert.Error(t, VersionLog{"app\xff": 1}.Validate())
	assert.NoError(t, VersionLog{"café": 1}.Validate())
}

func TestVersionLogNames(t *testing.T) {
	log := VersionLog{"b": 2, "a": 1}
	assert.Equal(t, []string{"a", "b"}, log.Names())
}
