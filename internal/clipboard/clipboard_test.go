package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	var m Memory
	assert.Equal(t, "", m.Text())

	assert.NoError(t, m.WriteAll("first"))
	assert.NoError(t, m.WriteAll("second"))

	assert.Equal(t, "second", m.Text())
	assert.Equal(t, 2, m.Writes())
}

func TestWriterImplementations(t *testing.T) {
	var _ Writer = System{}
	var _ Writer = &Memory{}
}
