package domain

import "time"

// Post is a single raw social post as returned by a source adapter.
type Post struct {
	ID         string    `json:"id,omitempty"`
	Text       string    `json:"text"`
	Engagement int       `json:"engagement"`
	Timestamp  time.Time `json:"timestamp"`
	Author     string    `json:"author,omitempty"`
	Source     string    `json:"source,omitempty"`
}

// EngagementOrDefault returns the post's engagement, treating an unset (zero)
// value as 1 so that a post with no reach data still carries minimal weight.
func (p Post) EngagementOrDefault() int {
	if p.Engagement <= 0 {
		return 1
	}
	return p.Engagement
}

// CleanedPost is a Post extended with the cleaner's normalized text.
type CleanedPost struct {
	Post
	CleanedText string `json:"cleaned_text"`
}

// AnalyzedPost is a CleanedPost extended with its classified sentiment.
type AnalyzedPost struct {
	CleanedPost
	Sentiment Sentiment `json:"sentiment"`
}
