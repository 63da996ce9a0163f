package content

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

var openers = []string{
	"Big news",
	"You asked, we delivered",
	"Stop scrolling",
	"This one is for you",
	"Fresh drop",
}

// MockProvider returns deterministic captions built from the request.
type MockProvider struct{}

func (MockProvider) GenerateCaption(ctx context.Context, req CaptionRequest) (Caption, error) {
	req, err := normalize(req)
	if err != nil {
		return Caption{}, err
	}
	if err := ctx.Err(); err != nil {
		return Caption{}, err
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(req.Topic) + "|" + req.Platform))
	opener := openers[h.Sum32()%uint32(len(openers))]

	return Caption{
		Text:     fmt.Sprintf("%s: %s. Tap the link in bio and join the conversation on %s!", opener, req.Topic, req.Platform),
		Hashtags: hashtags(req.Topic, req.Platform),
		Source:   "mock",
	}, nil
}

func hashtags(topic, platform string) []string {
	tags := []string{}
	seen := map[string]bool{}
	add := func(s string) {
		tag := "#" + strings.ToLower(s)
		if len(s) < 3 || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	for _, w := range strings.FieldsFunc(topic, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) }) {
		add(w)
		if len(tags) == 3 {
			break
		}
	}
	add(platform)
	return tags
}
