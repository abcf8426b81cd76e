package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "1b4e28ba", shortID("1b4e28ba-2fa1-11d2-883f-0016d3cca427"))
	assert.Equal(t, "abc", shortID("abc"), "short foreign IDs are shown as-is")
	assert.Equal(t, "-", shortID(""), "records without an ID still print")
}
