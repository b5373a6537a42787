package model

type ConvertMtxtResponse struct {
	RequestId string  `json:"request_id"`
	Version   string  `json:"version"`
	Duration  float64 `json:"duration"`
	Records   int     `json:"records"`
	Mtxt      string  `json:"mtxt"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
