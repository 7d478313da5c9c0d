package newsrelay

// Role is the part a matched element plays during extraction.
type Role string

// Element roles.
const (
	RoleHeadline Role = "headline"
	RoleBody     Role = "body"
	RoleNoise    Role = "noise"
)

// MatchRule maps a class-name signature to an element role.
type MatchRule struct {
	Signature string
	Role      Role
}

// Rules is the ordered set of class signatures that parameterize extraction.
// Order matters for headline rules: earlier signatures win when the
// headline cap is reached.
type Rules struct {
	Headlines []MatchRule
	Bodies    []MatchRule
	Noise     []MatchRule
}

// DefaultRules returns signatures tuned for CNN edition pages.
func DefaultRules() Rules {
	return Rules{
		Headlines: rulesFor(RoleHeadline,
			"container__headline",
			"container_lead-plus-headlines__headline",
			"card__headline",
			"headline",
		),
		Bodies: rulesFor(RoleBody,
			"article__content",
			"article-body",
			"body-text",
			"article-body__content",
			"basic-article",
			"article-content",
		),
		Noise: rulesFor(RoleNoise,
			"social-share",
			"advertisement",
		),
	}
}

// Signatures returns the signatures of rules in order.
func Signatures(rules []MatchRule) []string {
	sigs := make([]string, 0, len(rules))
	for _, r := range rules {
		sigs = append(sigs, r.Signature)
	}
	return sigs
}

// Validate returns an error if any rule set is empty or holds a blank signature.
func (r Rules) Validate() error {
	sets := []struct {
		role  Role
		rules []MatchRule
	}{
		{RoleHeadline, r.Headlines},
		{RoleBody, r.Bodies},
	}
	for _, set := range sets {
		if len(set.rules) == 0 {
			return Errorf(EINVALID, "no %s rules configured", set.role)
		}
	}
	for _, rules := range [][]MatchRule{r.Headlines, r.Bodies, r.Noise} {
		for _, rule := range rules {
			if rule.Signature == "" {
				return Errorf(EINVALID, "empty %s signature", rule.Role)
			}
		}
	}
	return nil
}

func rulesFor(role Role, signatures ...string) []MatchRule {
	rules := make([]MatchRule, 0, len(signatures))
	for _, sig := range signatures {
		rules = append(rules, MatchRule{Signature: sig, Role: role})
	}
	return rules
}
