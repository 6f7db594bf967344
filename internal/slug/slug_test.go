package slug

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "acme", Make("Acme"))
	assert.Equal(t, "mi-tienda-2", Make("Mi Tienda 2"))
	// non-ascii runes are stripped, dashes survive
	assert.Equal(t, "caf--sol", Make("Café & Sol"))
	assert.Equal(t, "", Make("¡¿!?"))
}

func TestMakeIsDeterministic(t *testing.T) {
	// Shop slugs carry no disambiguator: the same name always yields
	// the same slug, and creation is expected to reject the duplicate.
	assert.Equal(t, Make("Acme"), Make("Acme"))
}

func TestMakeUniqueDiffersForSameName(t *testing.T) {
	a := MakeUnique("Widget")
	time.Sleep(2 * time.Millisecond)
	b := MakeUnique("Widget")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "widget-"))
	assert.True(t, strings.HasPrefix(b, "widget-"))
}
