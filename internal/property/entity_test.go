// AngelaMos | 2026
// entity_test.go

package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplete(t *testing.T) {
	assert.True(t, Complete("1 Main St", "Reno", "NV", "89501"))
	assert.False(t, Complete("", "Reno", "NV", "89501"))
	assert.False(t, Complete("1 Main St", "  ", "NV", "89501"))
	assert.False(t, Complete("1 Main St", "Reno", "", "89501"))
	assert.False(t, Complete("1 Main St", "Reno", "NV", ""))
}

func TestFormat(t *testing.T) {
	p := Property{Address: "1 Main St", City: "Reno", State: "NV", ZipCode: "89501"}
	assert.Equal(t, "1 Main St, Reno, NV 89501", p.Format())

	suite := "Apt 4"
	p.Suite = &suite
	assert.Equal(t, "1 Main St, Apt 4, Reno, NV 89501", p.Format())
}
