package extract

import (
	"regexp"

	"momo-sms/internal/utils"
)

// name matches a human or business name in free text: letters and spaces,
// non-greedy so the surrounding anchor decides where it ends.
const name = `([A-Za-z][A-Za-z\s]*?)`

// phone matches a counterparty number, including the partially masked form
// the provider uses for some templates ("250***888").
const phone = `(\+?\d[\d*]{7,13})`

// Party extraction is anchored on the verb phrase around the name, so each
// role has its own ordered list. A non-match on any of these is a soft
// miss, never an error: free text legitimately omits counterparties.
var senderNamePatterns = []*regexp.Regexp{
	// "received ... from NAME (" is the strongest anchor; the bare
	// "from NAME (" and "by NAME on" forms catch the remaining templates.
	regexp.MustCompile(`(?i)received.*?from\s+` + name + `\s*\(`),
	regexp.MustCompile(`(?i)\bfrom\s+` + name + `\s*\(`),
	regexp.MustCompile(`(?i)\bby\s+` + name + `\s+on\b`),
}

var receiverNamePatterns = []*regexp.Regexp{
	// Explicit "payment to"/"transferred to" before the generic "to NAME"
	// fallback, which only fires when followed by digits or a paren.
	regexp.MustCompile(`(?i)payment to\s+` + name + `\s*[\d(]`),
	regexp.MustCompile(`(?i)transferred to\s+` + name + `\s*[\d(]`),
	regexp.MustCompile(`(?i)\bto\s+` + name + `\s*[\d(]`),
}

var agentNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)via agent:?\s+` + name + `\s*[\d(]`),
	regexp.MustCompile(`(?i)\bagent:?\s+` + name + `\s*[\d(]`),
}

var senderPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)from\s+[A-Za-z\s]+\(\s*` + phone + `\s*\)`),
}

var receiverPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)to\s+[A-Za-z\s]+\(\s*` + phone + `\s*\)`),
	regexp.MustCompile(`(?i)to\s+[A-Za-z\s]+` + phone),
}

var agentPhonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)agent:?\s+[A-Za-z\s]+\(\s*` + phone + `\s*\)`),
}

func scanParty(patterns []*regexp.Regexp, body string, clean func(string) string) (string, bool) {
	for _, re := range patterns {
		if match := re.FindStringSubmatch(body); len(match) > 1 {
			if v := clean(match[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// SenderName extracts the counterparty who originated the money.
func SenderName(body string) (string, bool) {
	return scanParty(senderNamePatterns, body, utils.CleanName)
}

// ReceiverName extracts the counterparty the money went to.
func ReceiverName(body string) (string, bool) {
	return scanParty(receiverNamePatterns, body, utils.CleanName)
}

// AgentName extracts the cash-in/cash-out agent named in the body.
func AgentName(body string) (string, bool) {
	return scanParty(agentNamePatterns, body, utils.CleanName)
}

// SenderPhone extracts the sender's phone number, possibly masked.
func SenderPhone(body string) (string, bool) {
	return scanParty(senderPhonePatterns, body, utils.NormalizePhone)
}

// ReceiverPhone extracts the receiver's phone number, possibly masked.
func ReceiverPhone(body string) (string, bool) {
	return scanParty(receiverPhonePatterns, body, utils.NormalizePhone)
}

// AgentPhone extracts the agent's phone number.
func AgentPhone(body string) (string, bool) {
	return scanParty(agentPhonePatterns, body, utils.NormalizePhone)
}
