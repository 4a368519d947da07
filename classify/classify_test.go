package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNull_MarksEveryCalleeUnknown(t *testing.T) {
	n := Null{}
	out, err := n.Classify(context.Background(), "def f(): pass", []string{"func:a.py:g", "func:a.py:h"}, "func:a.py:f")
	assert.NoError(t, err)
	assert.Equal(t, map[string]Certainty{
		"func:a.py:g": Unknown,
		"func:a.py:h": Unknown,
	}, out)
}

func TestNull_EmptyCallees(t *testing.T) {
	n := Null{}
	out, err := n.Classify(context.Background(), "", nil, "func:a.py:f")
	assert.NoError(t, err)
	assert.Empty(t, out)
}
