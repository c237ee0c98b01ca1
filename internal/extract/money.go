package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numeric matches a provider-formatted amount: either digit groups with
// thousands separators ("1,600", "25,000.50") or a plain run of digits.
const numeric = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`

// moneyPattern pairs a regexp with the normalizer applied to its first
// capture group. Within a list the order is the priority tie-break: the
// first entry that both matches and normalizes wins, so contextual
// phrasings sit above the generic fallbacks that would otherwise claim
// any "<number> RWF" in the body.
type moneyPattern struct {
	re        *regexp.Regexp
	normalize func(string) (decimal.Decimal, bool)
}

// parseMoney strips thousands separators and parses an arbitrary-precision
// decimal. A negative or malformed capture counts as a non-match so the
// caller moves on to the next pattern.
func parseMoney(raw string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

var amountPatterns = []moneyPattern{
	// Verb-anchored phrasings first: they name the principal amount even
	// when the body also quotes a fee or balance.
	{regexp.MustCompile(`(?i)payment of ` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)received ` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)deposit of ` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)transferred ` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)withdrawn ` + numeric + `\s*RWF`), parseMoney},
	// Generic fallbacks: first "<amount> RWF" in the body, then the
	// currency-first variant some templates use.
	{regexp.MustCompile(`(?i)` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)RWF\s*` + numeric), parseMoney},
}

var feePatterns = []moneyPattern{
	// The colon form is the current template; the colon-less and "paid"
	// forms appear in older backups.
	{regexp.MustCompile(`(?i)Fee was:\s*` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)Fee was ` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)Fee paid:\s*` + numeric + `\s*RWF`), parseMoney},
}

var balancePatterns = []moneyPattern{
	// "your new balance" before "new balance" before bare "balance" so a
	// longer label is never half-claimed by a shorter one.
	{regexp.MustCompile(`(?i)your new balance\s*:?\s*` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)new balance\s*:?\s*` + numeric + `\s*RWF`), parseMoney},
	{regexp.MustCompile(`(?i)balance\s*:\s*` + numeric + `\s*RWF`), parseMoney},
}

// scanMoney runs an ordered pattern list over the body and returns the
// first successfully normalized capture.
func scanMoney(patterns []moneyPattern, body string) (decimal.Decimal, bool) {
	for _, p := range patterns {
		match := p.re.FindStringSubmatch(body)
		if len(match) < 2 {
			continue
		}
		if d, ok := p.normalize(match[1]); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// Amount extracts the principal transaction amount from an SMS body.
func Amount(body string) (decimal.Decimal, bool) {
	return scanMoney(amountPatterns, body)
}

// Fee extracts the transaction fee. A missing fee is a soft miss; callers
// default it to zero.
func Fee(body string) (decimal.Decimal, bool) {
	return scanMoney(feePatterns, body)
}

// Balance extracts the post-transaction account balance.
func Balance(body string) (decimal.Decimal, bool) {
	return scanMoney(balancePatterns, body)
}
