package services

import (
	"context"
	"os"

	"github.com/jatenner/Snap2Healthmain-sub005/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"go.uber.org/zap"
)

// RekognitionService runs a cheap label-detection pre-pass over a meal photo.
// The labels are only hints fed into the vision model prompt, so every failure
// degrades to "no hints" rather than an error.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// FoodLabels returns the top detected labels for raw image bytes. Safe to
// call on a nil receiver.
func (r *RekognitionService) FoodLabels(ctx context.Context, imageData []byte) []string {
	if r == nil || r.client == nil {
		return nil
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageData},
		MaxLabels:     aws.Int32(10),
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		logger.L().Warn("label detection failed, continuing without hints", zap.Error(err))
		return nil
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels
}
