package api

import "github.com/pulseframework/pulse"

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func HealthGET(ctx pulse.Ctx) (*HealthResponse, error) {
	return &HealthResponse{
		Status:  "ok",
		Version: "0.1.0",
	}, nil
}
