package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// getPathID retrieves a numeric path parameter and validates it
func getPathID(c *gin.Context, paramName string) (int64, error) {
	value := c.Param(paramName)
	if value == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", paramName)
	}

	return id, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}
