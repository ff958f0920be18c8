package utils

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review-app/internal/config"
)

func TestS3Storage_ObjectURL(t *testing.T) {
	s, err := NewS3Storage(config.S3Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "review-images",
		UseSSL:          true,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://review-images.s3.us-east-1.amazonaws.com/reviews/P1/a.jpg",
		s.ObjectURL("reviews/P1/a.jpg"),
	)
}

// decodeAWSChunked strips the chunk headers of a streaming SigV4 payload.
func decodeAWSChunked(t *testing.T, body []byte) []byte {
	t.Helper()
	var out []byte
	r := bufio.NewReader(bytes.NewReader(body))
	for {
		header, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("chunk header: %v", err)
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(header), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			t.Fatalf("chunk size %q: %v", sizeHex, err)
		}
		if size == 0 {
			return out
		}
		chunk := make([]byte, size+2)
		if _, err := io.ReadFull(r, chunk); err != nil {
			t.Fatalf("chunk data: %v", err)
		}
		out = append(out, chunk[:size]...)
	}
}

func TestS3Storage_Upload(t *testing.T) {
	var gotPath, gotType, gotSHA, gotDecodedLen string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotSHA = r.Header.Get("X-Amz-Content-Sha256")
		gotDecodedLen = r.Header.Get("X-Amz-Decoded-Content-Length")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3Storage(config.S3Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "review-images",
		Endpoint:        strings.TrimPrefix(srv.URL, "http://"),
		UseSSL:          false,
		PublicURL:       "http://cdn.test/review-images",
	})
	require.NoError(t, err)

	url, err := s.Upload(context.Background(), "reviews/P1/a.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "http://cdn.test/review-images/reviews/P1/a.png", url)
	assert.Equal(t, "/review-images/reviews/P1/a.png", gotPath)
	assert.Equal(t, "image/png", gotType)

	payload := gotBody
	if strings.HasPrefix(gotSHA, "STREAMING-") {
		assert.Equal(t, "9", gotDecodedLen)
		payload = decodeAWSChunked(t, gotBody)
	}
	assert.Equal(t, []byte("png-bytes"), payload)
}

func TestS3Storage_UploadAccessDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
	}))
	defer srv.Close()

	s, err := NewS3Storage(config.S3Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Region:          "us-east-1",
		Bucket:          "review-images",
		Endpoint:        strings.TrimPrefix(srv.URL, "http://"),
	})
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "reviews/P1/a.png", []byte("x"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload to s3")
}
