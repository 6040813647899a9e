package controllers

import (
	"errors"
	"net/http"

	apperrors "storefront-service/common/errors"
	"storefront-service/common/logger"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service errors onto the failure envelope.
func handleServiceError(c *gin.Context, err error, notFoundMsg string) {
	_ = c.Error(err)

	var validationErr *services.ValidationError
	var gatewayErr *services.GatewayError

	switch {
	case errors.As(err, &validationErr):
		apperrors.Respond(c, apperrors.New(http.StatusBadRequest, validationErr.Message, validationErr))
	case errors.Is(err, services.ErrNotFound):
		apperrors.Respond(c, apperrors.NotFound(notFoundMsg))
	case errors.Is(err, services.ErrCategoryExists):
		// soft conflict: the request was understood, nothing was written
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category Already Exist"})
	case errors.Is(err, services.ErrCategoryInUse):
		apperrors.Respond(c, apperrors.New(http.StatusConflict, "Category is still used by products", err))
	case errors.As(err, &gatewayErr):
		apperrors.Respond(c, apperrors.New(http.StatusBadGateway, "Payment failed", gatewayErr.Err))
	default:
		logger.Error(c, "Service error", err)
		apperrors.Respond(c, err)
	}
}

func badRequest(c *gin.Context, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	apperrors.Respond(c, apperrors.BadRequest(message, err))
}
