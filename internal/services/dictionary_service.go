package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vocabbook/backend/internal/models"
	"go.uber.org/zap"
)

const dictionaryCacheTTL = 24 * time.Hour

// dictionaryService proxies word lookups to the public dictionary API with a
// Redis cache in front, plus a best-effort Chinese translation of the first
// meaning
type dictionaryService struct {
	client         *http.Client
	redis          *redis.Client
	dictionaryURL  string
	translationURL string
	logger         *zap.Logger
}

// NewDictionaryService creates a new dictionary service
func NewDictionaryService(redisClient *redis.Client, dictionaryURL, translationURL string, logger *zap.Logger) *dictionaryService {
	return &dictionaryService{
		client:         &http.Client{Timeout: 10 * time.Second},
		redis:          redisClient,
		dictionaryURL:  dictionaryURL,
		translationURL: translationURL,
		logger:         logger,
	}
}

// apiEntry mirrors the dictionaryapi.dev response shape
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic"`
	Phonetics []struct {
		Text string `json:"text"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// translationResponse mirrors the mymemory response shape
type translationResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Lookup returns the dictionary entry for a word, serving from cache when possible
func (s *dictionaryService) Lookup(ctx context.Context, word string) (*models.DictionaryEntry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, fmt.Errorf("word is required")
	}

	cacheKey := "dict:" + word
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var entry models.DictionaryEntry
		if err := json.Unmarshal([]byte(cached), &entry); err == nil {
			return &entry, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("dictionary cache read failed", zap.Error(err))
	}

	entry, err := s.fetchEntry(ctx, word)
	if err != nil {
		return nil, err
	}

	entry.ChineseDefinition = s.translate(ctx, word)

	if data, err := json.Marshal(entry); err == nil {
		if err := s.redis.Set(ctx, cacheKey, data, dictionaryCacheTTL).Err(); err != nil {
			s.logger.Warn("dictionary cache write failed", zap.Error(err))
		}
	}

	return entry, nil
}

// fetchEntry calls the public dictionary API and flattens its response
func (s *dictionaryService) fetchEntry(ctx context.Context, word string) (*models.DictionaryEntry, error) {
	reqURL := s.dictionaryURL + "/" + url.PathEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("word not found: %s", word)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary request failed with status %d", resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("word not found: %s", word)
	}

	raw := entries[0]
	entry := &models.DictionaryEntry{
		Word:     raw.Word,
		Phonetic: raw.Phonetic,
	}
	if entry.Phonetic == "" {
		for _, p := range raw.Phonetics {
			if p.Text != "" {
				entry.Phonetic = p.Text
				break
			}
		}
	}
	for _, m := range raw.Meanings {
		if len(m.Definitions) == 0 {
			continue
		}
		entry.Meanings = append(entry.Meanings, models.DictionaryMeaning{
			PartOfSpeech: m.PartOfSpeech,
			Definition:   m.Definitions[0].Definition,
		})
	}

	return entry, nil
}

// translate fetches a Chinese translation of the word. A failure only logs,
// the lookup still succeeds without the translation.
func (s *dictionaryService) translate(ctx context.Context, word string) string {
	reqURL := fmt.Sprintf("%s?q=%s&langpair=%s", s.translationURL, url.QueryEscape(word), url.QueryEscape("en|zh-CN"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Warn("failed to build translation request", zap.Error(err))
		return ""
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("translation request failed", zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("translation request failed", zap.Int("status", resp.StatusCode))
		return ""
	}

	var tr translationResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		s.logger.Warn("failed to decode translation response", zap.Error(err))
		return ""
	}

	return tr.ResponseData.TranslatedText
}
