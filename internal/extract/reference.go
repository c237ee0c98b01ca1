package extract

import "regexp"

// Transaction id labels are matched case-sensitively: the provider prints
// them verbatim and a case-folded match would start picking ids out of
// quoted user text. Longer labels come first so "Transaction Id:" never
// claims the digits that belong to "Financial Transaction Id:". The
// captured digits stay a string to preserve leading zeros.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Financial Transaction Id:\s*(\d+)`),
	regexp.MustCompile(`External Transaction Id:\s*(\d+)`),
	regexp.MustCompile(`Transaction Id:\s*(\d+)`),
	regexp.MustCompile(`TxId:\s*(\d+)`),
	regexp.MustCompile(`\bId:\s*(\d+)`),
}

// TransactionID extracts the provider-assigned reference id from an SMS
// body, if one is present.
func TransactionID(body string) (string, bool) {
	for _, re := range referencePatterns {
		if match := re.FindStringSubmatch(body); len(match) > 1 {
			return match[1], true
		}
	}
	return "", false
}
