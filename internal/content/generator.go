package content

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	punctPct   = 0.3
	numbersPct = 0.15
	maxDigits  = 4
)

// Mid-sentence marks repeat commas so they come up more often.
var (
	midPunct = []string{",", ",", ",", ";", ":"}
	endPunct = []string{".", ".", ".", "!", "?"}
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator returns a Generator seeded with the current time.
func NewGenerator() *Generator {
	return NewGeneratorWithSeed(time.Now().UnixNano())
}

// NewGeneratorWithSeed returns a deterministic Generator.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Words selects count words uniformly and applies the punctuation and
// numbers options.
func (g *Generator) Words(words []string, count int, punctuation, numbers bool) []string {
	result := make([]string, 0, count)
	sentenceStart := true
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		if numbers && g.rnd.Float64() < numbersPct {
			word = g.number()
		}
		if punctuation {
			word, sentenceStart = g.punctuate(word, sentenceStart, i == count-1)
		}
		result = append(result, word)
	}
	return result
}

// Quote picks one quote and splits it into words.
func (g *Generator) Quote(quotes []string) []string {
	return strings.Fields(quotes[g.rnd.Intn(len(quotes))])
}

func (g *Generator) number() string {
	digits := 1 + g.rnd.Intn(maxDigits)
	limit := 1
	for i := 0; i < digits; i++ {
		limit *= 10
	}
	return strconv.Itoa(g.rnd.Intn(limit))
}

// punctuate capitalizes sentence starts and appends marks. It returns the
// word and whether the next word opens a new sentence.
func (g *Generator) punctuate(word string, sentenceStart, last bool) (string, bool) {
	if sentenceStart {
		word = capitalize(word)
	}
	if last {
		return word + endPunct[g.rnd.Intn(len(endPunct))], true
	}
	if g.rnd.Float64() > punctPct {
		return word, false
	}
	if g.rnd.Intn(3) == 0 {
		return word + endPunct[g.rnd.Intn(len(endPunct))], true
	}
	return word + midPunct[g.rnd.Intn(len(midPunct))], false
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
