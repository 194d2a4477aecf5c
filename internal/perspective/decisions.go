package perspective

import (
	"errors"
	"fmt"
)

// ErrInappropriate indicates no appropriate story could be produced.
var ErrInappropriate = errors.New("story was not appropriate")

// Score thresholds above which (inclusive) content is rejected. The
// toxicity threshold follows the Perspective API demo; the rest were
// tuned by experimentation.
const (
	toxicityThreshold         = 0.70
	sexuallyExplicitThreshold = 0.60
	profanityThreshold        = 0.80
	identityAttackThreshold   = 0.80
	obsceneThreshold          = 0.80
)

var thresholds = map[Attribute]float64{
	Toxicity:         toxicityThreshold,
	SexuallyExplicit: sexuallyExplicitThreshold,
	Profanity:        profanityThreshold,
	IdentityAttack:   identityAttackThreshold,
	Obscene:          obsceneThreshold,
}

// IsAppropriate reports whether scored text is safe to publish. Every
// decided attribute must be present in the score map; a score at or
// above its threshold rejects the text.
func IsAppropriate(scores map[Attribute]float64) (bool, error) {
	if scores == nil {
		return false, errors.New("scores cannot be nil")
	}

	for _, attr := range RequestedAttributes {
		score, ok := scores[attr]
		if !ok {
			return false, fmt.Errorf("scores do not contain a %s score", attr)
		}
		if score >= thresholds[attr] {
			return false, nil
		}
	}
	return true, nil
}
