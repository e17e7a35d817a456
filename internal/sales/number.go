package sales

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const numberPrefix = "V-"

// NextDocumentNumber derives the next sale document number from the most
// recently assigned one. Numbers have the form V-YYYYMMDD-NNN and restart at
// 001 on the first sale of each day. The suffix is zero-padded to three
// digits and simply widens past 999. An empty or unparsable lastNumber starts
// the day's sequence at 001.
func NextDocumentNumber(now time.Time, lastNumber string) string {
	dayPrefix := numberPrefix + now.Format("20060102") + "-"

	next := 1
	if strings.HasPrefix(lastNumber, dayPrefix) {
		if n, err := strconv.Atoi(lastNumber[len(dayPrefix):]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%03d", dayPrefix, next)
}
