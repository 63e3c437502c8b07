package model

// RowError is an upstream per-row validation failure, passed through verbatim.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

type PasteOrdersRequest struct {
	UserID  string `json:"-" validate:"required"`
	Network string `json:"network" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

type UploadOrdersRequest struct {
	UserID  string `json:"-" validate:"required"`
	Network string `json:"-" validate:"required"`
	// JobID is minted by the client and keys the progress counter, so the
	// progress endpoint is pollable while the transfer is still running.
	JobID       string `json:"-" validate:"required,uuid"`
	FileName    string `json:"-" validate:"required"`
	ContentType string `json:"-" validate:"required"`
}

type BulkSubmitResponse struct {
	JobID    string     `json:"jobId,omitempty"`
	Accepted int        `json:"accepted"`
	Errors   []RowError `json:"errors,omitempty"`
}

type UploadProgressResponse struct {
	JobID   string `json:"jobId"`
	Percent int    `json:"percent"`
	Done    bool   `json:"done"`
}
