package api

import "encoding/json"

// Identity is the body of a successful login or register call.
type Identity struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	TokenType   string `json:"token_type,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Source is the article's origin. Depending on which upstream provider
// the backend proxied, it arrives as either a bare string or a
// {name, url} object; both decode into the same struct.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func (s *Source) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}
	type plain Source
	return json.Unmarshal(data, (*plain)(s))
}

type Article struct {
	ArticleID   string   `json:"article_id,omitempty"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      Source   `json:"source,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content,omitempty"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Key identifies an article: the explicit backend id when present,
// otherwise the URL.
func (a Article) Key() string {
	if a.ArticleID != "" {
		return a.ArticleID
	}
	return a.URL
}

// Body returns the best available long-form text for the article.
func (a Article) Body() string {
	switch {
	case a.Summary != "":
		return a.Summary
	case a.Content != "":
		return a.Content
	default:
		return a.Description
	}
}

// FeedPage is one page of a topic or headline feed.
type FeedPage struct {
	Articles   []Article `json:"articles"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
}

// Interaction is the body of POST /interactions/add.
type Interaction struct {
	UserID          string   `json:"user_id"`
	ArticleID       string   `json:"article_id"`
	Topic           string   `json:"topic"`
	Keywords        []string `json:"keywords"`
	InteractionType string   `json:"interaction_type"`
}

// Recommendation is one item of a blended feed. Score is zero when the
// backend sent a bare article instead of an {article, score} pair.
type Recommendation struct {
	Article Article
	Score   float64
}

// RecommendationSet is the blended feed for one user. Source tags where
// the blend came from; "cold_start" means a trending fallback.
type RecommendationSet struct {
	Source string
	Items  []Recommendation
}

// ColdStart reports whether the feed was served from the trending
// fallback for users without enough interaction history.
func (s *RecommendationSet) ColdStart() bool {
	return s != nil && s.Source == "cold_start"
}
