package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(cfg aws.Config) *RekognitionService {
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}
}

// DecodeImage accepts a data URI or bare base64 payload.
func DecodeImage(img string) ([]byte, error) {
	if strings.HasPrefix(img, "data:") {
		i := strings.Index(img, ",")
		if i < 0 {
			return nil, fmt.Errorf("invalid data URI: %w", ErrInvalidInput)
		}
		img = img[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(img))
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("invalid base64 image: %w", ErrInvalidInput)
	}
	return data, nil
}

// RecognizeLabels returns the top labels for a base64-encoded image.
func (r *RekognitionService) RecognizeLabels(ctx context.Context, base64Img string) ([]string, error) {
	data, err := DecodeImage(base64Img)
	if err != nil {
		return nil, err
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w: %w", ErrUpstream, err)
	}

	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
