package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparableValue_AbsentSortsBelowPresent(t *testing.T) {
	a := Absent()
	p := Present(NewInteger(0))
	assert.Equal(t, -1, a.Compare(p))
	assert.Equal(t, 1, p.Compare(a))
}

func TestComparableValue_AbsentEqualsAbsent(t *testing.T) {
	assert.Equal(t, 0, Absent().Compare(Absent()))
}

func TestComparableValue_PresentDefersToValue(t *testing.T) {
	a := Present(NewInteger(1))
	b := Present(NewInteger(2))
	assert.Equal(t, -1, a.Compare(b))
}

func TestComparableValue_String(t *testing.T) {
	assert.Equal(t, "", Absent().String())
	assert.Equal(t, "7", Present(NewInteger(7)).String())
}
