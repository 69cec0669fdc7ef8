package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{
		tokens := []string{"WALL", "Periodic-1", "Periodic-2", "Wall-22", "Wall-top", "Neuman-10", "inlet", " outflow-a "}
		flags := []BCFLAG{BC_Wall, BC_Periodic, BC_Periodic, BC_Wall, BC_Wall, BC_Neuman, BC_None, BC_Out}
		labels := []string{"", "1", "2", "22", "top", "10", "inlet", "a"}
		for i, token := range tokens {
			bt := NewBCTAG(token)
			t.Logf("bt = %s, bcflag = %v", bt, bt.GetFLAG().String())
			assert.Equal(t, flags[i], bt.GetFLAG())
			assert.Equal(t, labels[i], bt.GetLabel())
		}
	}
	{ // Marker selection
		bt := NewBCTAG("Wall-top")
		assert.True(t, bt.Matches("Wall-top"))
		assert.True(t, bt.Matches("wall"))
		assert.True(t, bt.Matches("WALL"))
		assert.False(t, bt.Matches("wall-top"))
		assert.False(t, bt.Matches("inflow"))
		assert.False(t, NewBCTAG("inlet").Matches("in"))
		assert.True(t, NewBCTAG("inlet").Matches("inlet"))
	}
	assert.Equal(t, "Wall", BC_Wall.String())
	assert.Equal(t, "Invalid", BCFLAG(200).String())
}
