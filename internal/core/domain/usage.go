package domain

// UsageKind names one of the metered advisor features.
type UsageKind string

const (
	UsageChat     UsageKind = "chat"
	UsageSpeech   UsageKind = "speech"
	UsageFengShui UsageKind = "fengshui"
)

// GuestUsage counts advisor calls made by non-activated accounts. Counters
// only grow until reset on logout or by an admin; a call whose completion
// failed is given back.
type GuestUsage struct {
	AIChatCount   int `json:"ai_chat_count"`
	SpeechCount   int `json:"speech_count"`
	FengShuiCount int `json:"feng_shui_count"`
}

// Count returns the counter for kind.
func (u GuestUsage) Count(kind UsageKind) int {
	switch kind {
	case UsageChat:
		return u.AIChatCount
	case UsageSpeech:
		return u.SpeechCount
	case UsageFengShui:
		return u.FengShuiCount
	}
	return 0
}

// Increment returns a copy with the counter for kind bumped by one.
func (u GuestUsage) Increment(kind UsageKind) GuestUsage {
	switch kind {
	case UsageChat:
		u.AIChatCount++
	case UsageSpeech:
		u.SpeechCount++
	case UsageFengShui:
		u.FengShuiCount++
	}
	return u
}

// Decrement returns a copy with the counter for kind lowered by one, never
// below zero.
func (u GuestUsage) Decrement(kind UsageKind) GuestUsage {
	switch kind {
	case UsageChat:
		u.AIChatCount = max(u.AIChatCount-1, 0)
	case UsageSpeech:
		u.SpeechCount = max(u.SpeechCount-1, 0)
	case UsageFengShui:
		u.FengShuiCount = max(u.FengShuiCount-1, 0)
	}
	return u
}
