package classify

import "strings"

// MatterType is the legal-practice category derived from message content.
type MatterType string

const (
	MatterDrafting   MatterType = "Drafting"
	MatterNotice     MatterType = "Notice"
	MatterOpinion    MatterType = "Opinion"
	MatterLitigation MatterType = "Litigation"
	MatterGeneral    MatterType = "General"
)

// Urgency is the coarse priority paired with a matter type.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// Classification pairs a matter type with its urgency.
type Classification struct {
	MatterType MatterType
	Urgency    Urgency
}

// keywordGroup maps a set of trigger substrings to a classification.
// Groups are evaluated in order; the first match wins.
type keywordGroup struct {
	keywords []string
	result   Classification
}

var matterGroups = []keywordGroup{
	{[]string{"draft", "deed", "agreement"}, Classification{MatterDrafting, UrgencyHigh}},
	{[]string{"notice"}, Classification{MatterNotice, UrgencyHigh}},
	{[]string{"opinion", "advice"}, Classification{MatterOpinion, UrgencyMedium}},
	{[]string{"case", "court", "legal"}, Classification{MatterLitigation, UrgencyHigh}},
}

var followupKeywords = []string{"call", "follow", "remind", "tomorrow", "urgent", "meet", "appointment"}

// Classify derives a matter type and urgency from message text.
// Matching is case-insensitive substring containment against ordered keyword
// groups; unmatched text classifies as General/Low.
func Classify(text string) Classification {
	t := strings.ToLower(text)
	for _, group := range matterGroups {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.result
			}
		}
	}
	return Classification{MatterGeneral, UrgencyLow}
}

// NeedsFollowup reports whether the message asks for human follow-up.
func NeedsFollowup(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range followupKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}
