package contract

import (
	"testing"

	"github.com/alexanderramin/gantry/internal/gantt"
	"github.com/stretchr/testify/assert"
)

func TestNewChartRequest_SetsDefaults(t *testing.T) {
	req := NewChartRequest("p1")

	assert.Equal(t, "p1", req.ProjectID)
	assert.Equal(t, gantt.GranularityWeek, req.Granularity)
	assert.Equal(t, gantt.DefaultDimensions(), req.Dimensions)
	assert.Equal(t, "light", req.Theme)
	assert.Nil(t, req.Now)
	assert.Empty(t, req.Expanded)
	assert.False(t, req.ExpandAll)
	assert.False(t, req.Reschedulable)
}

func TestNewChainRequest_SetsDefaults(t *testing.T) {
	req := NewChainRequest("p1")
	assert.Equal(t, "p1", req.ProjectID)
	assert.Equal(t, 10, req.HistoryLimit)
	assert.False(t, req.Record)
}

func TestUseCaseError_Message(t *testing.T) {
	err := &UseCaseError{Code: ErrItemNotFound, Message: "no item 1.2"}
	assert.Equal(t, "ITEM_NOT_FOUND: no item 1.2", err.Error())
}
