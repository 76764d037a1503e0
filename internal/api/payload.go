package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// decodeFeedPage tolerates both envelopes the backend emits: the news
// and headline routes wrap the page in {"data": {...}}, older routes
// return the same object at the top level. Precedence: data key first,
// then the unwrapped body.
func decodeFeedPage(raw []byte) (*FeedPage, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, jsonNull) {
		raw = env.Data
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, ErrInvalidResponse
	}
	var page FeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &page, nil
}

// decodeRecommendations accepts either key name for the item list
// ("recommendations" preferred, "articles" as fallback) and, per item,
// either an {article, score} pair or a bare article.
func decodeRecommendations(raw []byte) (*RecommendationSet, error) {
	var env struct {
		Source          string            `json:"source"`
		Recommendations []json.RawMessage `json:"recommendations"`
		Articles        []json.RawMessage `json:"articles"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	items := env.Recommendations
	if items == nil {
		items = env.Articles
	}

	set := &RecommendationSet{Source: env.Source, Items: make([]Recommendation, 0, len(items))}
	for _, item := range items {
		var pair struct {
			Article *Article `json:"article"`
			Score   float64  `json:"score"`
		}
		if err := json.Unmarshal(item, &pair); err == nil && pair.Article != nil {
			set.Items = append(set.Items, Recommendation{Article: *pair.Article, Score: pair.Score})
			continue
		}
		var bare Article
		if err := json.Unmarshal(item, &bare); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		set.Items = append(set.Items, Recommendation{Article: bare})
	}
	return set, nil
}

// decodeDetail extracts the "detail" field of an error body. FastAPI
// emits a string for domain errors and a list for validation errors;
// anything non-string is passed through as compact JSON.
func decodeDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, env.Detail); err != nil {
		return ""
	}
	return buf.String()
}
