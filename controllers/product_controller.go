package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"storefront-service/common/logger"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	service ProductServiceAPI
	cache   *CacheManager
}

func NewProductController(s ProductServiceAPI, cache *CacheManager) *ProductController {
	return &ProductController{service: s, cache: cache}
}

// respondCached serves a cached body when present, otherwise builds it, sends it and caches it.
func (ctrl *ProductController) respondCached(c *gin.Context, key string, build func() (gin.H, bool)) {
	var cached gin.H
	version, hit := ctrl.cache.Get(c.Request.Context(), key, &cached)
	if hit {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	body, ok := build()
	if !ok {
		return
	}
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, body)
	ctrl.cache.SetAsync(version, key, body)
}

func (ctrl *ProductController) GetProducts(c *gin.Context) {
	ctrl.respondCached(c, "products:list", func() (gin.H, bool) {
		products, err := ctrl.service.ListProducts(c.Request.Context())
		if err != nil {
			handleServiceError(c, err, "Products not found")
			return nil, false
		}
		return gin.H{
			"success":    true,
			"countTotal": len(products),
			"message":    "All Products",
			"products":   products,
		}, true
	})
}

func (ctrl *ProductController) GetProductsPage(c *gin.Context) {
	page, err := parsePage(c.Param("page"))
	if err != nil {
		badRequest(c, "Invalid page number", err)
		return
	}

	ctrl.respondCached(c, "products:page:"+strconv.Itoa(page), func() (gin.H, bool) {
		products, err := ctrl.service.ListProductsPage(c.Request.Context(), page)
		if err != nil {
			handleServiceError(c, err, "Products not found")
			return nil, false
		}
		return gin.H{"success": true, "page": page, "products": products}, true
	})
}

func (ctrl *ProductController) GetProductCount(c *gin.Context) {
	ctrl.respondCached(c, "products:count", func() (gin.H, bool) {
		total, err := ctrl.service.CountProducts(c.Request.Context())
		if err != nil {
			handleServiceError(c, err, "Products not found")
			return nil, false
		}
		return gin.H{"success": true, "total": total}, true
	})
}

func (ctrl *ProductController) GetProduct(c *gin.Context) {
	slug := c.Param("slug")
	ctrl.respondCached(c, "product:slug:"+slug, func() (gin.H, bool) {
		product, err := ctrl.service.GetProductBySlug(c.Request.Context(), slug)
		if err != nil {
			handleServiceError(c, err, "Product not found")
			return nil, false
		}
		return gin.H{"success": true, "message": "Single Product Fetched", "product": product}, true
	})
}

// GetPhoto streams the stored photo bytes with their content type.
func (ctrl *ProductController) GetPhoto(c *gin.Context) {
	id, err := parseObjectID(c, "pid")
	if err != nil {
		badRequest(c, "Invalid product ID", err)
		return
	}

	photo, err := ctrl.service.GetPhoto(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Photo not found")
		return
	}
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	products, err := ctrl.service.SearchProducts(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		handleServiceError(c, err, "Products not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (ctrl *ProductController) FilterProducts(c *gin.Context) {
	var req filterRequest
	// an empty body means no filters
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid filter body", err)
		return
	}

	products, err := ctrl.service.FilterProducts(c.Request.Context(), services.ProductFilter{
		CategoryIDs: req.Checked,
		PriceRange:  req.Radio,
	})
	if err != nil {
		handleServiceError(c, err, "Products not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (ctrl *ProductController) RelatedProducts(c *gin.Context) {
	pid, err := parseObjectID(c, "pid")
	if err != nil {
		badRequest(c, "Invalid product ID", err)
		return
	}
	cid, err := parseObjectID(c, "cid")
	if err != nil {
		badRequest(c, "Invalid category ID", err)
		return
	}

	products, err := ctrl.service.RelatedProducts(c.Request.Context(), pid, cid)
	if err != nil {
		handleServiceError(c, err, "Products not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (ctrl *ProductController) ProductsByCategory(c *gin.Context) {
	slug := c.Param("slug")
	ctrl.respondCached(c, "products:category:"+slug, func() (gin.H, bool) {
		result, err := ctrl.service.ProductsByCategory(c.Request.Context(), slug)
		if err != nil {
			handleServiceError(c, err, "Category not found")
			return nil, false
		}
		return gin.H{"success": true, "category": result.Category, "products": result.Products}, true
	})
}

func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	in, err := parseProductForm(c)
	if err != nil {
		badRequest(c, "Invalid multipart form", err)
		return
	}

	product, err := ctrl.service.CreateProduct(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err, "Category not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	logger.Info(c, "Product created", zap.String("product_id", product.ID.Hex()), zap.String("slug", product.Slug))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product Created Successfully",
		"product": product,
	})
}

func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := parseObjectID(c, "pid")
	if err != nil {
		badRequest(c, "Invalid product ID", err)
		return
	}
	in, err := parseProductForm(c)
	if err != nil {
		badRequest(c, "Invalid multipart form", err)
		return
	}

	product, err := ctrl.service.UpdateProduct(c.Request.Context(), id, in)
	if err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product Updated Successfully",
		"product": product,
	})
}

func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := parseObjectID(c, "pid")
	if err != nil {
		badRequest(c, "Invalid product ID", err)
		return
	}

	if err := ctrl.service.DeleteProduct(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Product not found")
		return
	}
	ctrl.cache.Invalidate(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Deleted successfully"})
}
