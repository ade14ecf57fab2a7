// ABOUTME: Built-in pool of daily challenges and the deterministic day picker.
// ABOUTME: The same day key always yields the same challenge.
package models

// ChallengePool holds the suggestions used for the daily challenge.
var ChallengePool = []string{
	"Send one thank-you message",
	"Walk 10,000 steps",
	"Spend 15 minutes learning something new",
	"Tidy one drawer or folder",
	"No social media for 2 hours straight",
	"Do 25 push-ups (or your variant)",
	"Write down 5 business ideas",
	"Walk 20 minutes outdoors",
	"Reach out to a friend you haven't seen in months",
	"Read one chapter of your book",
}

// ChallengeFor picks the pool entry for a day key.
func ChallengeFor(day string) string {
	return ChallengePool[hashKey(day)%int64(len(ChallengePool))]
}

// hashKey is the 31-multiplier string hash computed in 32-bit signed
// arithmetic, returned as its absolute value.
func hashKey(s string) int64 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
