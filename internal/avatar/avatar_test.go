// AngelaMos | 2026
// avatar_test.go

package avatar

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	p := New()

	tests := []struct {
		name string
		want Category
	}{
		{"Michael", Male},
		{"  james ", Male},
		{"Amy", Female},
		{"JANE", Female},
		{"Mary-Ann", Female},
		{"Xyzzy", Neutral},
		{"", Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Infer(tt.name))
		})
	}
}

func TestForNameStaysInRange(t *testing.T) {
	p := NewWithRand(rand.New(rand.NewPCG(1, 2)))

	for _, tc := range []struct {
		name string
		cat  Category
	}{
		{"Robert", Male},
		{"Susan", Female},
		{"Quinn", Neutral},
	} {
		lo, hi := Range(tc.cat)
		prefix := "/avatar/" + string(tc.cat) + "/"

		for range 200 {
			path := p.ForName(tc.name)
			require.True(t, strings.HasPrefix(path, prefix), path)

			n, err := strconv.Atoi(strings.TrimPrefix(path, prefix))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, lo)
			assert.LessOrEqual(t, n, hi)
		}
	}
}

func TestForNameVariesIndex(t *testing.T) {
	p := NewWithRand(rand.New(rand.NewPCG(7, 7)))

	seen := map[string]struct{}{}
	for range 100 {
		seen[p.ForName("Susan")] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
