package services

import "testing"

func TestDetectSpamCleanMessage(t *testing.T) {
	if got := DetectSpam("Is the 2 BHK in Baner still available?"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestDetectSpamKeywordsAndLinks(t *testing.T) {
	content := "CLICK HERE to claim your FREE MONEY now! http://x http://y http://z"
	// "click here" + "free money" + more than two links
	if got := DetectSpam(content); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestDetectSpamKeywordCountsOncePerKeyword(t *testing.T) {
	if got := DetectSpam("winner winner winner"); got != 15 {
		t.Fatalf("repeated keyword should count once, got %d", got)
	}
}

func TestDetectSpamCapsRatio(t *testing.T) {
	if got := DetectSpam("THIS FLAT IS THE BEST DEAL IN TOWN"); got != 10 {
		t.Fatalf("expected 10 for long all-caps, got %d", got)
	}
	// Short shouty messages are fine
	if got := DetectSpam("OK GREAT"); got != 0 {
		t.Fatalf("expected 0 for short caps, got %d", got)
	}
}

func TestDetectSpamClamped(t *testing.T) {
	content := "click here buy now limited offer act now urgent guaranteed free money winner prize lottery http://a http://b http://c"
	if got := DetectSpam(content); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestDetectSpamPure(t *testing.T) {
	content := "Urgent: guaranteed prize!"
	if DetectSpam(content) != DetectSpam(content) {
		t.Fatal("same input gave different scores")
	}
}
