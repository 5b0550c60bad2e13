package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_RankFollowsLifecycle(t *testing.T) {
	stages := Stages()
	require.Len(t, stages, 6)
	for i, s := range stages {
		assert.Equal(t, i, s.Rank(), s)
	}
}

func TestStage_After(t *testing.T) {
	tests := []struct {
		name string
		next Stage
		cur  Stage
		want bool
	}{
		{"next stage", StageInTransit, StageHarvested, true},
		{"forward jump", StageSold, StageHarvested, true},
		{"same stage", StageAtWarehouse, StageAtWarehouse, false},
		{"regression", StageInTransit, StageAtWarehouse, false},
		{"unknown next", Stage("Lost"), StageHarvested, false},
		{"unknown current", StageSold, Stage(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.After(tt.cur))
		})
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("atwarehouse")
	require.NoError(t, err)
	assert.Equal(t, StageAtWarehouse, s)

	s, err = ParseStage(" Sold ")
	require.NoError(t, err)
	assert.Equal(t, StageSold, s)
	assert.True(t, s.Terminal())

	_, err = ParseStage("Shipped")
	assert.Error(t, err)

	_, err = ParseStage("")
	assert.Error(t, err)
}

func TestStage_UnknownRank(t *testing.T) {
	assert.Equal(t, -1, Stage("Composted").Rank())
	assert.False(t, Stage("Composted").Valid())
}
