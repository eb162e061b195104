package contract

import "github.com/alexanderramin/gantry/internal/app"

type ChartRequest = app.ChartRequest

func NewChartRequest(projectID string) ChartRequest {
	return app.NewChartRequest(projectID)
}

type ChartResponse = app.ChartResponse
