package services

import "strings"

// Keywords that mark a message as likely spam. Each matched keyword adds
// 15 points, at most once regardless of how often it repeats.
var spamKeywords = []string{
	"click here", "buy now", "limited offer", "act now", "urgent",
	"guaranteed", "free money", "winner", "prize", "lottery",
}

// DetectSpam scores message content for spam likelihood, 0-100.
// Computed once at send time; the stored score is never revised.
func DetectSpam(content string) int {
	lower := strings.ToLower(content)
	spamScore := 0

	for _, keyword := range spamKeywords {
		if strings.Contains(lower, keyword) {
			spamScore += 15
		}
	}

	// Excessive links
	if strings.Count(lower, "http") > 2 {
		spamScore += 20
	}

	// Excessive caps; short shouty messages like "OK" get a pass
	runes := []rune(content)
	if len(runes) > 20 {
		caps := 0
		for _, r := range runes {
			if r >= 'A' && r <= 'Z' {
				caps++
			}
		}
		if float64(caps)/float64(len(runes)) > 0.5 {
			spamScore += 10
		}
	}

	if spamScore > 100 {
		spamScore = 100
	}
	return spamScore
}
