package api

import (
	"errors"
	"testing"
)

func TestDecodeFeedPageEnvelope(t *testing.T) {
	raw := []byte(`{"data":{"articles":[{"title":"A","url":"http://a"}],"page":2,"total_pages":5,"total":23}}`)
	page, err := decodeFeedPage(raw)
	if err != nil {
		t.Fatalf("decodeFeedPage: %v", err)
	}
	if len(page.Articles) != 1 || page.Articles[0].Title != "A" {
		t.Errorf("articles = %+v", page.Articles)
	}
	if page.Page != 2 || page.TotalPages != 5 || page.Total != 23 {
		t.Errorf("pagination = %d/%d/%d, want 2/5/23", page.Page, page.TotalPages, page.Total)
	}
}

func TestDecodeFeedPageUnwrapped(t *testing.T) {
	raw := []byte(`{"articles":[{"title":"B","url":"http://b"}],"page":1,"total_pages":1}`)
	page, err := decodeFeedPage(raw)
	if err != nil {
		t.Fatalf("decodeFeedPage: %v", err)
	}
	if len(page.Articles) != 1 || page.Articles[0].Title != "B" {
		t.Errorf("articles = %+v", page.Articles)
	}
}

func TestDecodeFeedPageNullData(t *testing.T) {
	for _, raw := range []string{`null`, `{"data":null}`} {
		if _, err := decodeFeedPage([]byte(raw)); !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("decodeFeedPage(%s) err = %v, want ErrInvalidResponse", raw, err)
		}
	}
}

func TestDecodeRecommendationsPairs(t *testing.T) {
	raw := []byte(`{"source":"personalized","recommendations":[{"article":{"title":"A","url":"http://a"},"score":0.92}]}`)
	set, err := decodeRecommendations(raw)
	if err != nil {
		t.Fatalf("decodeRecommendations: %v", err)
	}
	if set.Source != "personalized" {
		t.Errorf("source = %q", set.Source)
	}
	if len(set.Items) != 1 || set.Items[0].Score != 0.92 || set.Items[0].Article.Title != "A" {
		t.Errorf("items = %+v", set.Items)
	}
	if set.ColdStart() {
		t.Error("personalized feed should not report cold start")
	}
}

func TestDecodeRecommendationsBareArticles(t *testing.T) {
	raw := []byte(`{"source":"cold_start","articles":[{"title":"T","url":"http://t"}]}`)
	set, err := decodeRecommendations(raw)
	if err != nil {
		t.Fatalf("decodeRecommendations: %v", err)
	}
	if !set.ColdStart() {
		t.Error("expected cold start")
	}
	if len(set.Items) != 1 || set.Items[0].Article.Title != "T" || set.Items[0].Score != 0 {
		t.Errorf("items = %+v", set.Items)
	}
}

func TestDecodeRecommendationsPrefersRecommendationsKey(t *testing.T) {
	raw := []byte(`{"recommendations":[{"title":"R","url":"http://r"}],"articles":[{"title":"A","url":"http://a"}]}`)
	set, err := decodeRecommendations(raw)
	if err != nil {
		t.Fatalf("decodeRecommendations: %v", err)
	}
	if len(set.Items) != 1 || set.Items[0].Article.Title != "R" {
		t.Errorf("items = %+v, want the recommendations key to win", set.Items)
	}
}

func TestDecodeRecommendationsEmpty(t *testing.T) {
	set, err := decodeRecommendations([]byte(`{}`))
	if err != nil {
		t.Fatalf("decodeRecommendations: %v", err)
	}
	if len(set.Items) != 0 {
		t.Errorf("items = %+v, want empty", set.Items)
	}
}

func TestDecodeDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"detail":"User not found"}`, "User not found"},
		{"validation list", `{"detail":[{"loc":["body","user_id"],"msg":"field required"}]}`, `[{"loc":["body","user_id"],"msg":"field required"}]`},
		{"absent", `{"message":"nope"}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		if got := decodeDetail([]byte(tt.body)); got != tt.want {
			t.Errorf("%s: decodeDetail = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSourceUnmarshalBothShapes(t *testing.T) {
	var fromString Source
	if err := fromString.UnmarshalJSON([]byte(`"BBC News"`)); err != nil {
		t.Fatalf("string source: %v", err)
	}
	if fromString.Name != "BBC News" {
		t.Errorf("Name = %q", fromString.Name)
	}

	var fromObject Source
	if err := fromObject.UnmarshalJSON([]byte(`{"name":"BBC","url":"https://bbc.com"}`)); err != nil {
		t.Fatalf("object source: %v", err)
	}
	if fromObject.Name != "BBC" || fromObject.URL != "https://bbc.com" {
		t.Errorf("source = %+v", fromObject)
	}
}

func TestArticleKey(t *testing.T) {
	withID := Article{ArticleID: "abc", URL: "http://x"}
	if withID.Key() != "abc" {
		t.Errorf("Key = %q, want article id", withID.Key())
	}
	withoutID := Article{URL: "http://x"}
	if withoutID.Key() != "http://x" {
		t.Errorf("Key = %q, want url fallback", withoutID.Key())
	}
}

func TestArticleBodyPrecedence(t *testing.T) {
	a := Article{Summary: "s", Content: "c", Description: "d"}
	if a.Body() != "s" {
		t.Errorf("Body = %q, want summary first", a.Body())
	}
	a.Summary = ""
	if a.Body() != "c" {
		t.Errorf("Body = %q, want content second", a.Body())
	}
	a.Content = ""
	if a.Body() != "d" {
		t.Errorf("Body = %q, want description last", a.Body())
	}
}
