package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const dictionaryPayload = `[
	{
		"word": "hello",
		"phonetic": "",
		"phonetics": [{"text": ""}, {"text": "/həˈləʊ/"}],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting or salutation."},
					{"definition": "A call for attention."}
				]
			},
			{"partOfSpeech": "verb", "definitions": []},
			{
				"partOfSpeech": "interjection",
				"definitions": [{"definition": "Used as a greeting."}]
			}
		]
	},
	{"word": "hello", "phonetic": "/hɛˈloʊ/"}
]`

func newTestDictionaryService(dictionaryURL, translationURL string) *dictionaryService {
	return NewDictionaryService(nil, dictionaryURL, translationURL, zap.NewNop())
}

func TestDictionaryService_FetchEntry(t *testing.T) {
	t.Run("flattens first entry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/hello", r.URL.Path)
			w.Write([]byte(dictionaryPayload))
		}))
		defer server.Close()

		svc := newTestDictionaryService(server.URL, "")

		entry, err := svc.fetchEntry(context.Background(), "hello")

		require.NoError(t, err)
		assert.Equal(t, "hello", entry.Word)
		assert.Equal(t, "/həˈləʊ/", entry.Phonetic)
		require.Len(t, entry.Meanings, 2)
		assert.Equal(t, "noun", entry.Meanings[0].PartOfSpeech)
		assert.Equal(t, "A greeting or salutation.", entry.Meanings[0].Definition)
		assert.Equal(t, "interjection", entry.Meanings[1].PartOfSpeech)
	})

	t.Run("word not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		svc := newTestDictionaryService(server.URL, "")

		_, err := svc.fetchEntry(context.Background(), "qwzx")

		require.EqualError(t, err, "word not found: qwzx")
	})

	t.Run("upstream failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		svc := newTestDictionaryService(server.URL, "")

		_, err := svc.fetchEntry(context.Background(), "hello")

		require.EqualError(t, err, "dictionary request failed with status 502")
	})

	t.Run("empty response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		svc := newTestDictionaryService(server.URL, "")

		_, err := svc.fetchEntry(context.Background(), "hello")

		require.EqualError(t, err, "word not found: hello")
	})
}

func TestDictionaryService_Translate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "hello", r.URL.Query().Get("q"))
			assert.Equal(t, "en|zh-CN", r.URL.Query().Get("langpair"))
			w.Write([]byte(`{"responseData": {"translatedText": "你好"}}`))
		}))
		defer server.Close()

		svc := newTestDictionaryService("", server.URL)

		assert.Equal(t, "你好", svc.translate(context.Background(), "hello"))
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc := newTestDictionaryService("", server.URL)

		assert.Empty(t, svc.translate(context.Background(), "hello"))
	})
}
