package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

const ocrAPIVersion = "2021-07-07"

// ocrService calls the Aliyun RecognizeAdvanced OCR API directly over REST
// with an ACS v3 request signature, then extracts English words from the
// recognized text
type ocrService struct {
	client    *http.Client
	endpoint  string
	keyID     string
	keySecret string
	logger    *zap.Logger
}

// NewOCRService creates a new OCR service
func NewOCRService(endpoint, keyID, keySecret string, logger *zap.Logger) *ocrService {
	return &ocrService{
		client:    &http.Client{Timeout: 30 * time.Second},
		endpoint:  endpoint,
		keyID:     keyID,
		keySecret: keySecret,
		logger:    logger,
	}
}

// Recognize runs OCR over the image bytes and returns the extracted English words
func (s *ocrService) Recognize(ctx context.Context, image []byte) (*models.OCRResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image is required")
	}
	if s.keyID == "" || s.keySecret == "" {
		return nil, fmt.Errorf("OCR credentials are not configured")
	}

	text, err := s.recognizeAdvanced(ctx, image)
	if err != nil {
		return nil, err
	}

	return &models.OCRResult{
		Words:   ExtractEnglishWords(text),
		RawText: text,
	}, nil
}

// recognizeAdvanced performs the signed RecognizeAdvanced call
func (s *ocrService) recognizeAdvanced(ctx context.Context, image []byte) (string, error) {
	bodyHash := sha256Hex(image)
	headers := map[string]string{
		"host":                  s.endpoint,
		"x-acs-action":          "RecognizeAdvanced",
		"x-acs-content-sha256":  bodyHash,
		"x-acs-date":            time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		"x-acs-signature-nonce": uuid.New().String(),
		"x-acs-version":         ocrAPIVersion,
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var canonicalHeaders strings.Builder
	for _, k := range keys {
		canonicalHeaders.WriteString(k)
		canonicalHeaders.WriteString(":")
		canonicalHeaders.WriteString(headers[k])
		canonicalHeaders.WriteString("\n")
	}
	signedHeaders := strings.Join(keys, ";")

	canonicalRequest := strings.Join([]string{
		http.MethodPost,
		"/",
		"",
		canonicalHeaders.String(),
		signedHeaders,
		bodyHash,
	}, "\n")

	stringToSign := "ACS3-HMAC-SHA256\n" + sha256Hex([]byte(canonicalRequest))
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(stringToSign))
	signature := hex.EncodeToString(mac.Sum(nil))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://"+s.endpoint+"/", bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("failed to build OCR request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", fmt.Sprintf(
		"ACS3-HMAC-SHA256 Credential=%s,SignedHeaders=%s,Signature=%s",
		s.keyID, signedHeaders, signature))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("OCR request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("OCR request failed with status %d", resp.StatusCode)
	}

	var result struct {
		Data string `json:"Data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	if result.Data == "" {
		return "", nil
	}

	// Data carries a nested JSON document whose "content" field holds the text
	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(result.Data), &parsed); err != nil || parsed.Content == "" {
		return result.Data, nil
	}
	return parsed.Content, nil
}

// ExtractEnglishWords pulls the alphabetic tokens of at least two letters out
// of the text, lowercased, deduplicated and sorted
func ExtractEnglishWords(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	})

	seen := make(map[string]struct{})
	words := make([]string, 0, len(tokens))
	for _, token := range tokens {
		clean := strings.ToLower(token)
		if len(clean) < 2 {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		words = append(words, clean)
	}

	sort.Strings(words)
	return words
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
