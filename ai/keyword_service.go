package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// suggestTimeout bounds the upstream call so a slow model cannot stall a
// request indefinitely.
const suggestTimeout = 15 * time.Second

var ErrNotConfigured = errors.New("keyword suggestion service is not configured")

const keywordPrompt = `Given the following skill:
Title: %q
Description: %q

Suggest 3 to 5 relevant keywords or tags for this skill.
Each keyword/tag should be concise (1-3 words).
Return the keywords/tags as a comma-separated list.
Example: JavaScript, Web Development, Frontend, React, Node.js`

type KeywordService struct {
	Gen Generator
}

// Suggest asks the model for listing tags and returns the parsed keywords
// alongside the raw model output.
func (s *KeywordService) Suggest(ctx context.Context, title, description string) ([]string, string, error) {
	if s.Gen == nil {
		return nil, "", ErrNotConfigured
	}

	if description == "" {
		description = "No description provided."
	}
	prompt := fmt.Sprintf(keywordPrompt, title, description)

	ctx, cancel := context.WithTimeout(ctx, suggestTimeout)
	defer cancel()

	raw, err := s.Gen.Generate(ctx, prompt)
	if err != nil {
		return nil, "", fmt.Errorf("keyword suggestion failed: %w", err)
	}

	raw = strings.TrimSpace(raw)
	keywords := parseKeywords(raw)
	if len(keywords) == 0 {
		return nil, "", errors.New("keyword suggestion returned no keywords")
	}

	return keywords, raw, nil
}

func parseKeywords(raw string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		kw := strings.TrimSpace(part)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		keywords = append(keywords, kw)
	}
	return keywords
}
