package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"salience/internal/summarize"
)

// Key derives the content address for text summarized with opts. Texts that
// differ only in Unicode normalization or surrounding whitespace share a key;
// any change to the significant-word cap, cluster gap, or stop-word list
// produces a different one.
func Key(text string, opts summarize.Options) string {
	h := sha256.New()
	h.Write([]byte(norm.NFC.String(strings.TrimSpace(text))))
	h.Write([]byte{0})
	h.Write([]byte("n=" + strconv.Itoa(opts.SignificantWords)))
	h.Write([]byte{0})
	h.Write([]byte("gap=" + strconv.Itoa(opts.ClusterGap)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(opts.StopWords.Words(), "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
