package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

var errInvalidForm = errors.New("expected multipart form data")

// parseObjectID reads a hex ObjectID path parameter.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s", param)
	}
	return id, nil
}

// parsePage reads the 1-indexed page number; an empty value means the first page.
func parsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > services.MaxPage {
		return 0, errors.New("invalid page number")
	}
	return page, nil
}

// parseProductForm collects the product fields and the optional photo from a multipart request.
// Field presence and format checks are left to the service so they run in a fixed order.
func parseProductForm(c *gin.Context) (services.ProductInput, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return services.ProductInput{}, errInvalidForm
	}
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return services.ProductInput{}, fmt.Errorf("invalid multipart form: %w", err)
	}

	in := services.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Category:    c.PostForm("category"),
		Quantity:    c.PostForm("quantity"),
		Shipping:    c.PostForm("shipping"),
	}

	photo, err := readPhoto(c)
	if err != nil {
		return services.ProductInput{}, err
	}
	in.Photo = photo
	return in, nil
}

// readPhoto returns nil when no photo part was sent. Oversized uploads keep their reported
// size but only MaxPhotoSize+1 bytes are read, which is enough for the size rule to reject them.
func readPhoto(c *gin.Context) (*services.PhotoUpload, error) {
	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid photo upload: %w", err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, models.MaxPhotoSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	size := header.Size
	if size == 0 {
		size = int64(len(data))
	}
	return &services.PhotoUpload{Size: size, ContentType: contentType, Data: data}, nil
}
