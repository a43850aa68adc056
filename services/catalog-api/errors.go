package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shutterclone/photo-catalog/log"
	"github.com/shutterclone/photo-catalog/traceutils"
)

func abortWithError(c *gin.Context, code int, message string, traceErr error) {
	log.Error(message, zap.Error(traceErr))
	traceutils.CaptureException(c, traceErr)

	c.AbortWithStatusJSON(code, gin.H{
		"message": message,
	})
}
