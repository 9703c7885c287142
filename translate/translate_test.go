package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("halted", From("halted"))
	assert.Equal("line 7: oops", From("line %d: %s", 7, "oops"))
}

func TestLanguage(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(printer)
	assert.Equal(tag, Language())
}
