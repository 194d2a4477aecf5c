package story

import (
	"math/rand"
	"strings"
)

// sentenceEnders are the punctuation marks that close a sentence.
const sentenceEnders = ".?!"

// endings are the canned closing lines appended to a story.
var endings = []string{
	"The End.",
	"They lived happily ever after.",
	"Then, everything went horribly wrong.",
	"And--- that's a wrap.",
	"Goodbye!",
	`Then the director screamed "CUT!".`,
	"With that, our story draws to a close.",
	"We'll never know what happened next.",
}

// EndStory trims any trailing sentence fragment from generated prose
// and appends a closing line, so the result reads as deliberately
// ended. The generation service gives no guarantee of complete
// sentences.
func EndStory(text string) string {
	return AddEnding(RemoveSentenceFragmentAtEnd(text))
}

// RemoveSentenceFragmentAtEnd truncates text to end right after its
// last sentence-ending punctuation mark. Text already ending in one is
// returned unchanged; text with no such punctuation becomes empty.
func RemoveSentenceFragmentAtEnd(text string) string {
	last := strings.LastIndexAny(text, sentenceEnders)
	return text[:last+1]
}

// AddEnding appends a space and a randomly chosen closing line.
func AddEnding(text string) string {
	return text + " " + endings[rand.Intn(len(endings))]
}
