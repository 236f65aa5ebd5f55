package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, ToInt(3))
	assert.Equal(t, 3, ToInt(float64(3.7)))
	assert.Equal(t, 3, ToInt("3"))
	assert.Equal(t, 0, ToInt("not a number"))
	assert.Equal(t, 42, ToInt([]byte("42")))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 9.5, ToFloat(9.5))
	assert.Equal(t, 9.0, ToFloat(9))
	assert.Equal(t, 9.5, ToFloat("9.5"))
	assert.Equal(t, 0.0, ToFloat("bogus"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "12", ToString(12))
}
