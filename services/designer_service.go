// services/designer_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"soulpatterns-backend/utils"
)

const (
	textModel      = "gemini-2.5-flash"
	assistantModel = "gemini-2.5-pro"
	imageModel     = "imagen-4.0-generate-001"
	editModel      = "gemini-2.5-flash-image"

	tipCacheKey = "tip-of-the-day"
	tipCacheTTL = 12 * time.Hour
)

const assistantInstruction = "You are a master tattoo artist mentoring an apprentice. " +
	"Your tone is wise, professional and encouraging. Give detailed advice on tattoo " +
	"technique, safety, hygiene, design and client care, always from that perspective."

// ErrNoImage means the model answered without an image part.
var ErrNoImage = errors.New("the model returned no image")

// DesignerService wraps the generative image API. It is a pure
// request/response collaborator: whatever it returns is immediately
// eligible to be saved into the gallery, but saving is the caller's call.
type DesignerService struct {
	client *genai.Client
	tips   *gocache.Cache

	mu   sync.Mutex
	chat *genai.Chat
}

func NewDesignerService(ctx context.Context, apiKey string) (*DesignerService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &DesignerService{
		client: client,
		tips:   gocache.New(tipCacheTTL, time.Hour),
	}, nil
}

// GenerateFromPrompt turns a text idea into a stencil-ready design and
// returns it as a PNG data URL.
func (s *DesignerService) GenerateFromPrompt(ctx context.Context, prompt string) (string, error) {
	fullPrompt := fmt.Sprintf("A minimalist, clean, black and white tattoo design of %s. "+
		"The design must sit on a plain white background, suitable for a stencil.", prompt)

	resp, err := s.client.Models.GenerateImages(ctx, imageModel, fullPrompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/png",
		AspectRatio:    "1:1",
	})
	if err != nil {
		return "", fmt.Errorf("generating design: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", ErrNoImage
	}
	return utils.EncodeDataURL(resp.GeneratedImages[0].Image.ImageBytes, "image/png"), nil
}

// CreateTrace converts a design into a clean line-art stencil.
func (s *DesignerService) CreateTrace(ctx context.Context, imageDataURL string) (string, error) {
	data, mimeType, err := utils.DecodeDataURL(imageDataURL)
	if err != nil {
		return "", err
	}
	return s.editImage(ctx, data, mimeType,
		"Create a clean, black and white line-art stencil of this tattoo design. "+
			"The result must contain only the black lines on a transparent background, suitable for tracing.")
}

// TryOn renders the design photorealistically on the given body part.
func (s *DesignerService) TryOn(ctx context.Context, imageDataURL, bodyPart string) (string, error) {
	data, mimeType, err := utils.DecodeDataURL(imageDataURL)
	if err != nil {
		return "", err
	}
	return s.editImage(ctx, data, mimeType,
		fmt.Sprintf("Generate a high quality, photorealistic studio photo of a person's %s with natural "+
			"skin texture. Apply the provided tattoo image onto the skin, following the body's contours, "+
			"with lighting and shadows matching the photo so it looks completely real. "+
			"Return only the photorealistic image.", bodyPart))
}

func (s *DesignerService) editImage(ctx context.Context, data []byte, mimeType, instruction string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, editModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	})
	if err != nil {
		return "", fmt.Errorf("editing image: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return utils.EncodeDataURL(part.InlineData.Data, "image/png"), nil
			}
		}
	}
	return "", ErrNoImage
}

// TipOfTheDay returns a short motivational tip for the artist, cached for
// half a day and fetched with backoff because the tip is decorative and the
// home view asks for it on every mount.
func (s *DesignerService) TipOfTheDay(ctx context.Context) (string, error) {
	if tip, ok := s.tips.Get(tipCacheKey); ok {
		return tip.(string), nil
	}

	prompt := "Give one unique, motivating tip for an apprentice tattoo artist. One or two " +
		"sentences, covering technique, client care or artistic growth. Always answer with a tip."

	var lastErr error
	delay := 500 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := s.client.Models.GenerateContent(ctx, textModel, genai.Text(prompt),
			&genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
			})
		if err == nil {
			tip := strings.TrimSpace(resp.Text())
			if tip != "" {
				s.tips.Set(tipCacheKey, tip, gocache.DefaultExpiration)
				return tip, nil
			}
			err = errors.New("empty tip response")
		}
		lastErr = err
		log.Printf("tip of the day attempt %d failed: %v", attempt+1, err)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
	}
	return "", lastErr
}

// Chat sends one message to the mentor assistant, keeping the conversation
// going across calls.
func (s *DesignerService) Chat(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	if s.chat == nil {
		chat, err := s.client.Chats.Create(ctx, assistantModel, &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(assistantInstruction, genai.RoleUser),
		}, nil)
		if err != nil {
			s.mu.Unlock()
			return "", fmt.Errorf("creating assistant chat: %w", err)
		}
		s.chat = chat
	}
	chat := s.chat
	s.mu.Unlock()

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("assistant chat: %w", err)
	}
	return resp.Text(), nil
}
