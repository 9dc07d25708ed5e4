package api

import "github.com/samcharles93/xfsconv/pkg/xfs"

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}

type ErrorResponse struct {
	Error     ResponseError `json:"error"`
	RequestID string        `json:"request_id,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// InspectResponse describes a container without its field payloads.
type InspectResponse struct {
	Magic       string           `json:"magic"`
	Version     int16            `json:"version"`
	StructInfo  xfs.InfoHeader   `json:"structure_info"`
	ParamInfo   xfs.InfoHeader   `json:"parameter_info"`
	Offsets     int              `json:"offset_table_entries"`
	Stats       xfs.Stats        `json:"stats"`
	Diagnostics []xfs.Diagnostic `json:"diagnostics,omitempty"`
}
