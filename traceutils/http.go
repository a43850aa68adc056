package traceutils

import (
	"net/http"
	"net/http/httputil"

	"go.uber.org/zap"

	"github.com/shutterclone/photo-catalog/log"
)

// DumpRequest dumps an http request to string for trace logging.
func DumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequest(req, true)
	if err != nil {
		log.Error("fail to dump request", zap.Error(err))
	}

	return string(dump)
}

// DumpResponse dumps an http response to string for trace logging.
func DumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Error("fail to dump response", zap.Error(err))
	}

	return string(dump)
}
