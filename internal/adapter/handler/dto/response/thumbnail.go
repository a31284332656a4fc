package response

import (
	"encoding/base64"

	"github.com/marcos-nsantos/resize-cache/internal/domain/valueobject"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/thumbnail"
)

const (
	StateOK    = "ok"
	StateError = "error"
)

type ThumbnailResponse struct {
	State     string                           `json:"state"`
	Message   string                           `json:"message"`
	Code      string                           `json:"code,omitempty"`
	Parameter *valueobject.ResizeConfiguration `json:"parameter"`
	Src       string                           `json:"src"`
	ErrorHTML string                           `json:"error_html"`
	Load      *string                          `json:"load"`
	URL       string                           `json:"url,omitempty"`
	RequestID string                           `json:"request_id,omitempty"`
}

func ThumbnailFromResult(r *thumbnail.Result, errorHTML string) ThumbnailResponse {
	param := r.Parameter
	resp := ThumbnailResponse{
		State:     StateOK,
		Parameter: &param,
		Src:       r.Src,
		ErrorHTML: errorHTML,
		URL:       r.URL,
	}
	if r.Load != nil {
		load := base64.StdEncoding.EncodeToString(r.Load)
		resp.Load = &load
	}
	return resp
}

func ThumbnailError(code, message, errorHTML string) ThumbnailResponse {
	return ThumbnailResponse{
		State:     StateError,
		Message:   message,
		Code:      code,
		ErrorHTML: errorHTML,
	}
}
