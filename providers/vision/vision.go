// Package vision is a thin client for the Google Vision images:annotate
// endpoint, used to pull raw text out of uploaded bank statements.
package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateEntry struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateRequest struct {
	Requests []annotateEntry `json:"requests"`
}

type annotateResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

// ExtractText runs document text detection on the image. An image with no
// detectable text is an error, not an empty result.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	body, err := json.Marshal(annotateRequest{
		Requests: []annotateEntry{{
			Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []annotateFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API returned %d: %s", res.StatusCode, raw)
	}

	var parsed annotateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}

	if len(parsed.Responses) == 0 {
		return "", errors.New("empty vision response")
	}
	if parsed.Responses[0].Error != nil {
		return "", errors.New(parsed.Responses[0].Error.Message)
	}
	if parsed.Responses[0].FullTextAnnotation == nil || parsed.Responses[0].FullTextAnnotation.Text == "" {
		return "", errors.New("no text found in image")
	}

	return parsed.Responses[0].FullTextAnnotation.Text, nil
}
