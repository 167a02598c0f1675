// Package chat implements the keyword chatbot: a static ordered list
// of (pattern, response) rules with first-match-wins semantics and a
// random fallback pool.
package chat

import (
	"math/rand"
	"regexp"
	"strings"
)

// Rule pairs a pattern with its reply. Rules are checked in order and
// the first match wins.
type Rule struct {
	Pattern *regexp.Regexp
	Reply   string
}

// Bot answers questions from its rule table.
type Bot struct {
	rules    []Rule
	fallback []string
	rng      *rand.Rand
}

// Greeting is the opening message the bot sends unprompted.
const Greeting = "Hi! Ask me anything about you two!"

var defaultRules = []Rule{
	{regexp.MustCompile(`^(hi|hello|hey|sup|yo|hola)`), "Hello! What would you like to know?"},
	{regexp.MustCompile(`anniversary|when.*start|when.*together|date.*start`), "Your journey together started on your anniversary date. That's when everything began!"},
	{regexp.MustCompile(`first date|first.*meet`), "Your first date is one of the logged memories. Flowers, nerves, all of it."},
	{regexp.MustCompile(`love|why.*love|feelings`), "Every moment together is a treasure. That's the whole answer."},
	{regexp.MustCompile(`ldr|long distance|distance`), "Distance means nothing when someone means everything."},
	{regexp.MustCompile(`memories|remember|special moment`), "There are so many logged memories together. Each one is precious."},
	{regexp.MustCompile(`thank|thanks|appreciate`), "Thank YOU for being patient and understanding. You make everything easier."},
	{regexp.MustCompile(`future|marry|wedding|forever`), "More memories, more moments, more years together. Forever isn't long enough."},
	{regexp.MustCompile(`how are you|how.*doing|what.*up`), "Doing great! But more importantly, how are YOU doing?"},
	{regexp.MustCompile(`notes|list|todo|movies|places|things`), "There are shared lists of movies to watch, places to visit, and things to do. Drag items to done when you finish them!"},
	{regexp.MustCompile(`who made|who created|who built`), "This was built as a gift, coded with love."},
}

var defaultFallback = []string{
	"Hmm, not sure about that one! Try asking about dates, memories, or the shared lists.",
	"Interesting question! I know the love story best - ask about dates or memories.",
	"No answer for that yet, but I'm learning! Try asking about special moments.",
}

// NewBot creates a bot with the default rule table.
func NewBot(seed int64) *Bot {
	return &Bot{
		rules:    defaultRules,
		fallback: defaultFallback,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Reply answers the input. Matching is case-insensitive over the
// trimmed input; unmatched input draws uniformly from the fallback
// pool.
func (b *Bot) Reply(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, r := range b.rules {
		if r.Pattern.MatchString(input) {
			return r.Reply
		}
	}
	return b.fallback[b.rng.Intn(len(b.fallback))]
}
