package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skifte/skifte-server/models"
)

// One statement line: date, recipient (no digits), signed amount with two
// decimals, optional NOK suffix. Anything else on the line is ignored.
var linePattern = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})\s+([^\d-]+)\s+(-?\d+[,.]\d{2})\s*(?:NOK)?`)

// ParseStatement turns OCR text into bare transactions (date, recipient,
// amount). Lines that do not match the pattern are dropped, not failed; the
// count of dropped non-empty lines is returned so callers can report it.
// A matching line with an impossible date is an error, matching the
// all-or-nothing persistence of an upload.
func ParseStatement(text string) ([]models.Transaction, int, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	transactions := make([]models.Transaction, 0)
	skipped := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			skipped++
			continue
		}

		date, err := time.Parse("02.01.2006", match[1])
		if err != nil {
			return nil, 0, err
		}

		amount, err := strconv.ParseFloat(strings.Replace(match[3], ",", ".", 1), 64)
		if err != nil {
			return nil, 0, err
		}

		transactions = append(transactions, models.Transaction{
			Date:      date.Format("2006-01-02"),
			Recipient: strings.TrimSpace(match[2]),
			Amount:    amount,
		})
	}

	return transactions, skipped, nil
}
