package contract

import "github.com/alexanderramin/gantry/internal/app"

type ChainRequest = app.ChainRequest

func NewChainRequest(projectID string) ChainRequest {
	return app.NewChainRequest(projectID)
}

type ChainLink = app.ChainLink

type ChainResponse = app.ChainResponse

type RescheduleRequest = app.RescheduleRequest

type RescheduleResponse = app.RescheduleResponse
