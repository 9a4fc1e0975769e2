package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	assert.Equal(t, "restbase/v1.2.3", UserAgent())
	assert.Equal(t, "v1.2.3", Info()["version"])
}
