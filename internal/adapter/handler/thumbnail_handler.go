package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/resize-cache/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/resize-cache/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/resize-cache/internal/pkg/apperror"
	"github.com/marcos-nsantos/resize-cache/internal/pkg/httputil"
	"github.com/marcos-nsantos/resize-cache/internal/usecase/thumbnail"
)

type ThumbnailHandler struct {
	thumbnailSvc ThumbnailService
	errorHTML    string
	logger       *zap.Logger
}

func NewThumbnailHandler(thumbnailSvc ThumbnailService, errorHTML string, logger *zap.Logger) *ThumbnailHandler {
	return &ThumbnailHandler{
		thumbnailSvc: thumbnailSvc,
		errorHTML:    errorHTML,
		logger:       logger,
	}
}

// Generate serves GET and POST /thumbnails. Every outcome is a JSON body with
// a state field; the HTTP status follows the error kind.
func (h *ThumbnailHandler) Generate(c *gin.Context) {
	var req request.ThumbnailRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.thumbnailSvc.Generate(c.Request.Context(), thumbnail.Request{
		Src:    req.Src,
		Width:  req.Width,
		Height: req.Height,
		Mode:   req.Mode,
		Zoom:   req.Zoom,
	})
	if err != nil {
		appErr := apperror.FromError(err)
		if appErr.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("thumbnail generation failed",
				zap.Error(err),
				zap.String("request_id", httputil.GetRequestID(c)),
			)
		}
		h.fail(c, appErr)
		return
	}

	resp := response.ThumbnailFromResult(result, h.errorHTML)
	resp.RequestID = httputil.GetRequestID(c)
	httputil.OK(c, resp)
}

func (h *ThumbnailHandler) fail(c *gin.Context, appErr *apperror.AppError) {
	resp := response.ThumbnailError(appErr.Code, appErr.Message, h.errorHTML)
	resp.RequestID = httputil.GetRequestID(c)
	c.JSON(appErr.StatusCode, resp)
}
