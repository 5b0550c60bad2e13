package model

import (
	"fmt"
	"strings"
)

// Stage is one point of the batch lifecycle.
type Stage string

const (
	StageHarvested     Stage = "Harvested"
	StageInTransit     Stage = "InTransit"
	StageAtWarehouse   Stage = "AtWarehouse"
	StageAtDistributor Stage = "AtDistributor"
	StageAtRetailer    Stage = "AtRetailer"
	StageSold          Stage = "Sold"
)

// stageRank is the only ordering of stages. Do not compare Stage values directly.
var stageRank = map[Stage]int{
	StageHarvested:     0,
	StageInTransit:     1,
	StageAtWarehouse:   2,
	StageAtDistributor: 3,
	StageAtRetailer:    4,
	StageSold:          5,
}

// Stages lists every stage in lifecycle order.
func Stages() []Stage {
	return []Stage{
		StageHarvested,
		StageInTransit,
		StageAtWarehouse,
		StageAtDistributor,
		StageAtRetailer,
		StageSold,
	}
}

func (s Stage) Valid() bool {
	_, ok := stageRank[s]
	return ok
}

// Rank returns the position of s in the lifecycle, or -1 for unknown stages.
func (s Stage) Rank() int {
	r, ok := stageRank[s]
	if !ok {
		return -1
	}
	return r
}

// After reports whether s comes strictly later in the lifecycle than other.
func (s Stage) After(other Stage) bool {
	return s.Valid() && other.Valid() && s.Rank() > other.Rank()
}

func (s Stage) Terminal() bool {
	return s == StageSold
}

func (s Stage) String() string {
	return string(s)
}

// ParseStage accepts the canonical stage names, case-insensitively.
func ParseStage(v string) (Stage, error) {
	for _, s := range Stages() {
		if strings.EqualFold(string(s), strings.TrimSpace(v)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", v)
}
