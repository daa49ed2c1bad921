package sitescrape

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?\(?(?:\d{3})\)?[-.\s]?\d{3}[-.\s]?\d{4}|\d{10}|(?:\+\d{1,3}[-.\s]?)?\d{5}[-.\s]?\d{5}`)

	nonDigitRe = regexp.MustCompile(`\D`)
)

// FindEmails returns every email-shaped match in text.
func FindEmails(text string) []string {
	return emailRe.FindAllString(text, -1)
}

// FindPhones returns every phone-shaped match in text.
func FindPhones(text string) []string {
	return phoneRe.FindAllString(text, -1)
}

// CleanContacts normalizes raw matches. Emails must contain "@" and "." and
// are lower-cased; phones keep their trailing ten digits and are formatted
// "XXXXX XXXXX". Both lists are deduplicated in first-seen order.
func CleanContacts(emails, phones []string) ([]string, []string) {
	var outEmails []string
	seenEmail := map[string]bool{}
	for _, e := range emails {
		if !strings.Contains(e, "@") || !strings.Contains(e, ".") {
			continue
		}
		e = strings.ToLower(e)
		if seenEmail[e] {
			continue
		}
		seenEmail[e] = true
		outEmails = append(outEmails, e)
	}

	var outPhones []string
	seenPhone := map[string]bool{}
	for _, p := range phones {
		digits := nonDigitRe.ReplaceAllString(p, "")
		if len(digits) > 10 {
			digits = digits[len(digits)-10:]
		}
		if len(digits) != 10 {
			continue
		}
		formatted := digits[:5] + " " + digits[5:]
		if seenPhone[formatted] {
			continue
		}
		seenPhone[formatted] = true
		outPhones = append(outPhones, formatted)
	}

	return outEmails, outPhones
}
