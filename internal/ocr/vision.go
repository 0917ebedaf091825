// Package ocr wraps Google Cloud Vision text detection for card images.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// ErrNoText is returned when the Vision API finds no text in the image.
var ErrNoText = errors.New("no text detected in image")

// TextExtractor converts a card image into raw text. Implemented by
// VisionService and by fakes in tests.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// VisionService is the Google Cloud Vision backed extractor.
type VisionService struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionService creates the Vision client, preferring an explicit
// GOOGLE_APPLICATION_CREDENTIALS file over ambient credentials.
func NewVisionService(ctx context.Context) (*VisionService, error) {
	var client *vision.ImageAnnotatorClient
	var err error
	if credPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credPath != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credPath))
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to init OCR client: %w", err)
	}
	return &VisionService{client: client}, nil
}

// ExtractText runs text detection and returns the full-text annotation.
func (s *VisionService) ExtractText(ctx context.Context, image []byte) (string, error) {
	img := &visionpb.Image{Content: image}
	anns, err := s.client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", fmt.Errorf("could not extract text from image: %w", err)
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", ErrNoText
	}
	return anns[0].Description, nil
}

// Close releases the underlying client.
func (s *VisionService) Close() error {
	return s.client.Close()
}
