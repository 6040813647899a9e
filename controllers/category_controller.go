package controllers

import (
	"net/http"

	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	service CategoryServiceAPI
	cache   *CacheManager
}

func NewCategoryController(s CategoryServiceAPI, cache *CacheManager) *CategoryController {
	return &CategoryController{service: s, cache: cache}
}

func (ctrl *CategoryController) bindCategory(c *gin.Context) (services.CategoryRequest, bool) {
	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		badRequest(c, "Name is required", err)
		return req, false
	}
	return req, true
}

func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	req, ok := ctrl.bindCategory(c)
	if !ok {
		return
	}

	category, err := ctrl.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "New category created",
		"category": category,
	})
}

func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		badRequest(c, "Invalid category ID", err)
		return
	}
	req, ok := ctrl.bindCategory(c)
	if !ok {
		return
	}

	category, err := ctrl.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Category Updated Successfully",
		"category": category,
	})
}

func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	var cached gin.H
	version, hit := ctrl.cache.Get(c.Request.Context(), "categories:list", &cached)
	if hit {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	categories, err := ctrl.service.ListCategories(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Categories not found")
		return
	}
	body := gin.H{"success": true, "message": "All Categories List", "categories": categories}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, body)
	ctrl.cache.SetAsync(version, "categories:list", body)
}

func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	category, err := ctrl.service.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Get Single Category Successfully",
		"category": category,
	})
}

func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := parseObjectID(c, "id")
	if err != nil {
		badRequest(c, "Invalid category ID", err)
		return
	}

	if err := ctrl.service.DeleteCategory(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category Deleted Successfully"})
}
