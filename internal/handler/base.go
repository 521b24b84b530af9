package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PathID reads the named URL parameter as an int64 identifier. On a
// malformed value it writes the 400 response itself and reports false.
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}

// PathInt reads the named URL parameter as a plain int, for ward
// numbers and other small keys.
func PathInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return n, true
}
