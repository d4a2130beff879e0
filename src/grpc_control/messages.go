package grpc_control

import "token-scanner/src/models"

type Empty struct{}

type AnalyzeRequest struct {
	ContractAddress string `json:"contract_address"`
}

type AnalyzeResponse struct {
	Id         string              `json:"id"`
	RugRisk    models.RiskTier     `json:"rug_risk"`
	TokenData  models.TokenProfile `json:"token_data"`
	Coverage   models.Coverage     `json:"coverage"`
	AnalyzedAt int64               `json:"analyzed_at"`
}

type SourceStatus struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type ListSourcesResponse struct {
	Sources []*SourceStatus `json:"sources"`
}
