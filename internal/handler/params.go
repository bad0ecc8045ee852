package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/api-marketplace/internal/service"
	"github.com/prperemyshlev/api-marketplace/internal/utils"
)

const maxPageLimit = 100

// pageParams reads page and limit, falling back to the endpoint's default limit
func pageParams(c *gin.Context, defaultLimit int) (service.PageRequest, error) {
	page, err := positiveQueryInt(c, "page", 1)
	if err != nil {
		return service.PageRequest{}, err
	}

	limit, err := positiveQueryInt(c, "limit", defaultLimit)
	if err != nil {
		return service.PageRequest{}, err
	}
	if limit > maxPageLimit {
		return service.PageRequest{}, fmt.Errorf("limit must not exceed %d", maxPageLimit)
	}
	// the row offset (page-1)*limit must fit in an int
	if page > math.MaxInt/limit {
		return service.PageRequest{}, fmt.Errorf("page must not exceed %d", math.MaxInt/limit)
	}

	return service.PageRequest{Page: page, Limit: limit}, nil
}

func positiveQueryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return n, nil
}

// developerAddress returns the lowercased developerAddress query parameter
func developerAddress(c *gin.Context) (string, error) {
	address := utils.NormalizeAddress(c.Query("developerAddress"))
	if address == "" {
		return "", fmt.Errorf("developerAddress is required")
	}
	return address, nil
}
