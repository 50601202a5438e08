package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kurin/blazer/b2"
)

// ProofStore persists a collection-proof image and returns the value stored
// on the request document (an object URL, or the original payload when
// stored inline).
type ProofStore interface {
	Store(ctx context.Context, requestID string, dataURI string) (string, error)
}

// InlineProofStore keeps the base64 payload on the document itself. Used
// when no object storage is configured.
type InlineProofStore struct{}

func (InlineProofStore) Store(_ context.Context, _ string, dataURI string) (string, error) {
	return dataURI, nil
}

// B2ProofStore uploads proof images to a Backblaze B2 bucket and stores a
// signed download URL on the request instead of megabytes of base64.
type B2ProofStore struct {
	client     *b2.Client
	bucket     *b2.Bucket
	bucketName string
}

func NewB2ProofStore(keyID, applicationKey, bucketName string) (*B2ProofStore, error) {
	ctx := context.Background()

	client, err := b2.NewClient(ctx, keyID, applicationKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create B2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", bucketName, err)
	}

	return &B2ProofStore{
		client:     client,
		bucket:     bucket,
		bucketName: bucketName,
	}, nil
}

func (s *B2ProofStore) Store(ctx context.Context, requestID string, dataURI string) (string, error) {
	payload, ext, err := decodeProofPayload(dataURI)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("proofs/%s%s", requestID, ext)

	obj := s.bucket.Object(objectName)
	writer := obj.NewWriter(ctx)
	if _, err := io.Copy(writer, bytes.NewReader(payload)); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload proof to B2: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close B2 writer: %w", err)
	}

	url, err := s.bucket.AuthToken(ctx, "proofs/", 7*24*time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to sign proof URL: %w", err)
	}

	return fmt.Sprintf("%s/file/%s/%s?Authorization=%s", s.bucket.BaseURL(), s.bucketName, objectName, url), nil
}

// decodeProofPayload accepts either a data URI or a bare base64 string.
func decodeProofPayload(dataURI string) ([]byte, string, error) {
	encoded := dataURI
	ext := ".jpg"

	if strings.HasPrefix(dataURI, "data:") {
		idx := strings.Index(dataURI, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		header := dataURI[len("data:"):idx]
		encoded = dataURI[idx+1:]

		switch {
		case strings.HasPrefix(header, "image/png"):
			ext = ".png"
		case strings.HasPrefix(header, "image/webp"):
			ext = ".webp"
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 proof payload: %w", err)
	}
	return payload, ext, nil
}
