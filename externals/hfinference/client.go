// Package hfinference is a client for the HuggingFace hosted inference API
// used to auto-tag catalog images with an image-classification model.
package hfinference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shutterclone/photo-catalog/log"
	"github.com/shutterclone/photo-catalog/traceutils"
)

type Client struct {
	endpoint  string
	authToken string
	client    *http.Client
}

func New(endpoint, authToken string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		authToken: authToken,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify posts an image to the classification model and returns the
// predicted labels, lowercased. The inference API has been observed to
// answer with either a ranked array of {label, score} objects or an
// array-like wrapper whose first element carries a label; both are handled.
func (c *Client) Classify(ctx context.Context, image []byte) ([]string, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.authToken))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Debug("inference api request failed", zap.String("request", traceutils.DumpRequest(req)))
		return nil, fmt.Errorf("inference api returned status %d: %s", resp.StatusCode, respBody)
	}

	return parseLabels(respBody)
}

func parseLabels(body []byte) ([]string, error) {
	var ranked []classification
	if err := json.Unmarshal(body, &ranked); err == nil && len(ranked) > 0 && ranked[0].Label != "" {
		labels := make([]string, 0, len(ranked))
		for _, r := range ranked {
			if r.Label == "" {
				continue
			}
			labels = append(labels, strings.ToLower(r.Label))
		}
		return labels, nil
	}

	// some models wrap the predictions one level deeper
	var wrapped [][]classification
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped) > 0 && len(wrapped[0]) > 0 && wrapped[0][0].Label != "" {
		return []string{strings.ToLower(wrapped[0][0].Label)}, nil
	}

	return nil, fmt.Errorf("unexpected inference response shape: %s", truncate(body, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}
