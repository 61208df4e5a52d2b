package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionProvider runs DOCUMENT_TEXT_DETECTION on Google Cloud Vision.
// Every engine owns its own client connection.
type VisionProvider struct {
	CredentialsFile string
}

var _ Provider = (*VisionProvider)(nil)

func NewVisionProvider(credentialsFile string) *VisionProvider {
	return &VisionProvider{CredentialsFile: strings.TrimSpace(credentialsFile)}
}

func (p *VisionProvider) NewEngine(ctx context.Context, language string) (Engine, error) {
	var opts []option.ClientOption
	if p.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.CredentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &visionEngine{client: client, hint: languageHint(language)}, nil
}

type visionEngine struct {
	client *vision.ImageAnnotatorClient
	hint   string
}

func (e *visionEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.client == nil {
		return "", errors.New("vision engine already closed")
	}
	if len(image) == 0 {
		return "", nil
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: []string{e.hint},
				},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision annotate: %w", err)
	}

	responses := resp.GetResponses()
	if len(responses) == 0 {
		return "", nil
	}
	if status := responses[0].GetError(); status != nil && status.GetMessage() != "" {
		return "", fmt.Errorf("vision annotate: %s", status.GetMessage())
	}

	return responses[0].GetFullTextAnnotation().GetText(), nil
}

func (e *visionEngine) Close() error {
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}
