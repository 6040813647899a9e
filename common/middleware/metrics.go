package middleware

import (
	"context"
	"strings"
	"time"

	awspkg "storefront-service/pkg/aws"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1/"

// MetricsMiddleware records request count, latency and error counts per storefront resource,
// and response cache hits and misses for cached reads. Health probes are not counted.
// A nil or disabled client makes it a no-op.
func MetricsMiddleware(metricsClient *awspkg.MetricsClient, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if !metricsClient.IsEnabled() || isProbe(route) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		statusCode := c.Writer.Status()
		dimensions := requestDimensions(serviceName, c.Request.Method, route, statusCode)
		cacheMetric := cacheMetricFor(c.Writer.Header().Get("X-Cache"))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metricsClient.RecordCount(ctx, awspkg.MetricHTTPRequests, dimensions)
			_ = metricsClient.RecordLatency(ctx, awspkg.MetricHTTPLatency, duration, dimensions)

			switch {
			case statusCode >= 500:
				_ = metricsClient.RecordCount(ctx, awspkg.MetricHTTP5xx, dimensions)
			case statusCode >= 400:
				_ = metricsClient.RecordCount(ctx, awspkg.MetricHTTP4xx, dimensions)
			}

			if cacheMetric != "" {
				_ = metricsClient.RecordCount(ctx, cacheMetric, map[string]string{
					"Service":  serviceName,
					"Resource": dimensions["Resource"],
				})
			}
		}()
	}
}

func isProbe(route string) bool {
	return route == "/" || route == "/health"
}

// requestDimensions uses the route template, not the raw path, so slugs and ids never
// become dimension values.
func requestDimensions(serviceName, method, route string, statusCode int) map[string]string {
	if route == "" {
		route = "unmatched"
	}
	return map[string]string{
		"Service":  serviceName,
		"Resource": resourceOf(route),
		"Method":   method,
		"Path":     route,
		"Status":   statusCodeToRange(statusCode),
	}
}

// resourceOf names the API area a route belongs to: product, category, payment, orders.
// Photo downloads are split from the rest of the product routes.
func resourceOf(route string) string {
	rest, ok := strings.CutPrefix(route, apiPrefix)
	if !ok || rest == "" {
		return "other"
	}
	segments := strings.Split(rest, "/")
	switch {
	case segments[0] == "product" && len(segments) > 1 && segments[1] == "photo":
		return "photo"
	case segments[0] == "all-orders", segments[0] == "order-status":
		return "orders"
	}
	return segments[0]
}

func cacheMetricFor(header string) string {
	switch header {
	case "HIT":
		return awspkg.MetricCacheHits
	case "MISS":
		return awspkg.MetricCacheMisses
	default:
		return ""
	}
}

func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
