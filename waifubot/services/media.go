package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const maxConcurrentMediaChecks = 8

// MediaService stores card media in an S3-compatible Spaces bucket.
// The stored object key lands in waifu_cards.media_file.
type MediaService struct {
	client *s3.Client
	bucket string
	region string
	root   string
}

func NewMediaService(spacesKey, spacesSecret, region, bucket, mediaRoot string) *MediaService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(cfg)

	return &MediaService{
		client: client,
		bucket: bucket,
		region: region,
		root:   strings.TrimPrefix(mediaRoot, "/"),
	}
}

// MediaKey builds the object key for a card's media file.
func (s *MediaService) MediaKey(card *models.WaifuCard) string {
	return fmt.Sprintf("%s/%s/%d%s", s.root, strings.ToLower(card.Rarity), card.ID, extensionFor(card.MediaType))
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "video":
		return ".mp4"
	case "animation":
		return ".gif"
	default:
		return ".jpg"
	}
}

// UploadCardMedia uploads the media bytes for a card and returns the
// object key to store in media_file.
func (s *MediaService) UploadCardMedia(ctx context.Context, card *models.WaifuCard, data []byte, contentType string) (string, error) {
	key := s.MediaKey(card)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
		ACL:          types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload media for card %d: %w", card.ID, err)
	}

	return key, nil
}

// MediaURL returns the public URL for a stored media key.
func (s *MediaService) MediaURL(key string) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func (s *MediaService) DeleteCardMedia(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media %s: %w", key, err)
	}
	return nil
}

// VerifyCardMedia checks that every card with a recorded media_file
// still has its object in the bucket and returns the IDs of cards
// whose media is missing.
func (s *MediaService) VerifyCardMedia(ctx context.Context, cards []*models.WaifuCard) ([]int64, error) {
	var (
		mu      sync.Mutex
		missing []int64
	)

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(maxConcurrentMediaChecks)

	for _, card := range cards {
		if card.MediaFile == "" {
			continue
		}

		card := card
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil, err
		}

		g.Go(func() error {
			defer sem.Release(1)

			_, err := s.client.HeadObject(gctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(card.MediaFile),
			})
			if err != nil {
				mu.Lock()
				missing = append(missing, card.ID)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return missing, nil
}
