package namegen_test

import (
	"strings"
	"testing"

	"github.com/hexwar/balancer/pkg/namegen"
	"github.com/stretchr/testify/assert"
)

func TestNameIsDeterministic(t *testing.T) {
	sig := "K1:A1,A2,D5|K1:A1,A2,D5"
	assert.Equal(t, namegen.Name(sig), namegen.Name(sig))
}

func TestNameIsTwoWords(t *testing.T) {
	name := namegen.Name("K1:A1|K1:A1")
	parts := strings.Fields(name)
	assert.Len(t, parts, 2)
}

func TestNameVariesAcrossSignatures(t *testing.T) {
	a := namegen.Name("K1:A1|K1:A1")
	b := namegen.Name("K1:D5|K1:D5")
	assert.NotEqual(t, a, b)
}
